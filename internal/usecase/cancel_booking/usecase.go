package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования гостем
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	notifier     Notifier
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; notifier может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: tenant=%s, token=%s", req.TenantID, req.Token)

	// 1. Валидация входных данных
	if req.TenantID == uuid.Nil || req.Token == uuid.Nil {
		uc.logger.Warn("CancelBooking: restaurant id and token are required")
		return nil, fmt.Errorf("%w: restaurant id and token are required", ErrInvalidInput)
	}

	// 2. Получаем бронирование по токену
	booking, err := uc.bookingRepo.GetByToken(ctx, req.TenantID, req.Token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking token=%s not found", req.Token)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking token=%s: %v", req.Token, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	resp := &Response{ID: booking.ID, Token: booking.Token}

	// 3. Повторная отмена не меняет состояние
	if booking.Status == domain.StatusCancelled {
		uc.logger.Info("CancelBooking: booking id=%d already cancelled", booking.ID)
		resp.Status = string(domain.StatusCancelled)
		resp.AlreadyCancelled = true
		return resp, nil
	}

	if booking.Status == domain.StatusCompleted || booking.IsBlock() {
		uc.logger.Warn("CancelBooking: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, ErrCannotCancel
	}

	// 4. Минимальный срок отмены
	settings, err := uc.settings.Get(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	minutesUntil := booking.StartsAt(uc.location).Sub(now).Minutes()
	if minutesUntil < float64(settings.MinNoticeMinutes) {
		uc.logger.Warn("CancelBooking: booking id=%d starts in %.0f min, notice is %d min",
			booking.ID, minutesUntil, settings.MinNoticeMinutes)
		return nil, ErrLateCancellation
	}

	// 5. Отменяем; стол освобождается, так как отменённые не занимают столы
	if err := uc.bookingRepo.UpdateStatus(ctx, req.TenantID, booking.ID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}
	booking.Status = domain.StatusCancelled

	uc.logger.Info("CancelBooking: booking id=%d cancelled", booking.ID)

	if uc.notifier != nil {
		uc.notifier.Notify(domain.BookingEvent{
			Type:       domain.EventBookingStatusChanged,
			TenantID:   booking.TenantID,
			Booking:    booking,
			OccurredAt: now,
		})
	}

	resp.Status = string(booking.Status)
	return resp, nil
}
