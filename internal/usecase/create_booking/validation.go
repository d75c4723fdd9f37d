package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает время визита
func validateRequest(req *Request) (types.TimeString, error) {
	if req.TenantID == uuid.Nil {
		return types.TimeString{}, fmt.Errorf("%w: restaurant id is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return types.TimeString{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	turn := domain.Turn(req.Turn)
	if !turn.IsValid() {
		return types.TimeString{}, fmt.Errorf("%w: turn must be lunch or dinner", ErrInvalidInput)
	}

	// Время по умолчанию - начало смены
	visitTime := turn.DefaultTime()
	if req.Time != "" {
		ts, err := types.NewTimeStringFromString(req.Time)
		if err != nil {
			return types.TimeString{}, fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
		visitTime = ts
	}

	// Гости выбирают время только из сетки смены
	if !req.IsManual && !turn.Contains(visitTime) {
		return types.TimeString{}, fmt.Errorf("%w: time %s is outside the %s turn", ErrInvalidInput, visitTime, turn)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return types.TimeString{}, fmt.Errorf("%w: party size must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if req.ZoneID != nil && *req.ZoneID <= 0 {
		return types.TimeString{}, fmt.Errorf("%w: zone id must be positive", ErrInvalidInput)
	}

	if req.TableID != nil && *req.TableID <= 0 {
		return types.TimeString{}, fmt.Errorf("%w: table id must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(name) > domain.MaxNameLength {
		return types.TimeString{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	phone := strings.TrimSpace(req.CustomerPhone)
	if email == "" && phone == "" {
		return types.TimeString{}, fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return types.TimeString{}, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}

	if req.Comments != nil && len(*req.Comments) > domain.MaxCommentLength {
		return types.TimeString{}, fmt.Errorf("%w: comments are too long", ErrInvalidInput)
	}

	if req.Status != nil && !req.IsManual {
		return types.TimeString{}, fmt.Errorf("%w: status can only be set by staff", ErrInvalidInput)
	}

	return visitTime, nil
}

// validateNotInPast проверяет, что визит ещё не начался
func validateNotInPast(date time.Time, visitTime types.TimeString, now time.Time, loc *time.Location) error {
	if visitTime.On(date, loc).Before(now) {
		return ErrBookingInPast
	}
	return nil
}

// decideStatus выбирает начальный статус бронирования
func decideStatus(req *Request, settings domain.Settings, deposit decimal.Decimal) (domain.BookingStatus, error) {
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.IsValid() || status == domain.StatusBlocked {
			return "", fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		return status, nil
	}

	switch {
	case req.IsWaitlist:
		return domain.StatusWaitingList, nil
	case settings.RequireManualApproval:
		return domain.StatusPendingApproval, nil
	case settings.RequiresPayment(deposit):
		return domain.StatusPendingPayment, nil
	default:
		return domain.StatusConfirmed, nil
	}
}
