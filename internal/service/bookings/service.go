package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo   BookingRepository
	tableRepo     TableRepository
	paymentClient PaymentClient
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// paymentClient и notifier могут быть nil.
func NewService(
	bookingRepo BookingRepository,
	tableRepo TableRepository,
	paymentClient PaymentClient,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		tableRepo:     tableRepo,
		paymentClient: paymentClient,
		notifier:      notifier,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// ListByDate возвращает бронирования ресторана на дату.
// Лист ожидания упорядочен по времени создания, остальные по времени визита.
func (s *Service) ListByDate(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: tenant=%s date=%s turn=%v status=%v",
		req.TenantID, req.Date.Format(domain.DateFormat), req.Turn, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByDate: invalid filter for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDate: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetByToken получает бронирование по публичному токену
func (s *Service) GetByToken(ctx context.Context, tenantID, token uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.getByToken(ctx, "GetByToken", tenantID, token)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Update применяет правку персонала к бронированию
func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: tenant=%s booking id=%d", tenantID, id)

	booking, err := s.getByID(ctx, "Update", tenantID, id)
	if err != nil {
		return nil, err
	}
	previousStatus := booking.Status

	// 1. Применяем патч
	if err := applyPatch(booking, req); err != nil {
		s.logger.Warn("Update: invalid patch for booking id=%d: %v", id, err)
		return nil, err
	}

	// 2. Проверяем переход статуса
	if !previousStatus.CanTransitionTo(booking.Status) {
		s.logger.Warn("Update: booking id=%d transition %s -> %s rejected", id, previousStatus, booking.Status)
		return nil, ErrInvalidTransition
	}

	// 3. Проверяем назначенный стол
	if req.AssignedTableID != nil {
		if err := s.checkTable(ctx, booking); err != nil {
			return nil, err
		}
	}

	booking.NormalizeDeposit()

	// 4. Сохраняем
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, s.mapWriteError("Update", id, err)
	}

	eventType := domain.EventBookingUpdated
	if booking.Status != previousStatus {
		eventType = domain.EventBookingStatusChanged
	}
	s.notify(eventType, booking)

	s.logger.Info("Update: booking id=%d updated, status=%s", id, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// Delete физически удаляет бронирование
func (s *Service) Delete(ctx context.Context, tenantID uuid.UUID, id int64) error {
	s.logger.Info("Delete: tenant=%s booking id=%d", tenantID, id)

	booking, err := s.getByID(ctx, "Delete", tenantID, id)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, tenantID, id); err != nil {
		return s.mapWriteError("Delete", id, err)
	}

	s.notify(domain.EventBookingDeleted, booking)
	return nil
}

// CheckIn отмечает приход гостей и запрашивает возврат депозита
func (s *Service) CheckIn(ctx context.Context, tenantID uuid.UUID, id int64) (*models.BookingResponse, error) {
	booking, err := s.changeStatus(ctx, "CheckIn", tenantID, id, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	if s.paymentClient != nil && booking.PaymentID != nil && booking.DepositAmount.IsPositive() {
		if err := s.paymentClient.Refund(ctx, booking); err != nil {
			s.logger.Error("CheckIn: refund failed for booking id=%d: %v", id, err)
		}
	}

	return models.FromDomainBooking(booking), nil
}

// MarkNoShow отменяет бронирование неявившихся гостей, депозит не возвращается
func (s *Service) MarkNoShow(ctx context.Context, tenantID uuid.UUID, id int64) (*models.BookingResponse, error) {
	booking, err := s.changeStatus(ctx, "MarkNoShow", tenantID, id, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// ConfirmPayment подтверждает бронирование после оплаты депозита.
// Повторное подтверждение уже подтверждённого бронирования не является ошибкой.
func (s *Service) ConfirmPayment(ctx context.Context, tenantID, token uuid.UUID, paymentID string) error {
	s.logger.Info("ConfirmPayment: tenant=%s token=%s", tenantID, token)

	booking, err := s.getByToken(ctx, "ConfirmPayment", tenantID, token)
	if err != nil {
		return err
	}

	switch booking.Status {
	case domain.StatusConfirmed:
		s.logger.Info("ConfirmPayment: booking id=%d already confirmed", booking.ID)
		return nil
	case domain.StatusPendingPayment:
	default:
		s.logger.Warn("ConfirmPayment: booking id=%d has status=%s", booking.ID, booking.Status)
		return ErrInvalidTransition
	}

	if paymentID != "" {
		if err := s.bookingRepo.SetPaymentID(ctx, tenantID, booking.ID, paymentID); err != nil {
			return s.mapWriteError("ConfirmPayment", booking.ID, err)
		}
		booking.PaymentID = &paymentID
	}

	if err := s.bookingRepo.UpdateStatus(ctx, tenantID, booking.ID, domain.StatusConfirmed); err != nil {
		return s.mapWriteError("ConfirmPayment", booking.ID, err)
	}
	booking.Status = domain.StatusConfirmed

	s.notify(domain.EventBookingStatusChanged, booking)
	return nil
}

// ExpirePayment отменяет бронирование с неоплаченным депозитом.
// Бронирования в других статусах не изменяются; возвращает true, если отмена произошла.
func (s *Service) ExpirePayment(ctx context.Context, tenantID, token uuid.UUID) (bool, error) {
	s.logger.Info("ExpirePayment: tenant=%s token=%s", tenantID, token)

	booking, err := s.getByToken(ctx, "ExpirePayment", tenantID, token)
	if err != nil {
		return false, err
	}

	if booking.Status != domain.StatusPendingPayment {
		s.logger.Info("ExpirePayment: booking id=%d skipped, status=%s", booking.ID, booking.Status)
		return false, nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, tenantID, booking.ID, domain.StatusCancelled); err != nil {
		return false, s.mapWriteError("ExpirePayment", booking.ID, err)
	}
	booking.Status = domain.StatusCancelled

	s.notify(domain.EventBookingStatusChanged, booking)
	return true, nil
}

// Вспомогательные методы

func (s *Service) changeStatus(ctx context.Context, method string, tenantID uuid.UUID, id int64, next domain.BookingStatus) (*domain.Booking, error) {
	s.logger.Info("%s: tenant=%s booking id=%d -> %s", method, tenantID, id, next)

	booking, err := s.getByID(ctx, method, tenantID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == next {
		return booking, nil
	}
	if !booking.Status.CanTransitionTo(next) {
		s.logger.Warn("%s: booking id=%d transition %s -> %s rejected", method, id, booking.Status, next)
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, tenantID, id, next); err != nil {
		return nil, s.mapWriteError(method, id, err)
	}
	booking.Status = next

	s.notify(domain.EventBookingStatusChanged, booking)
	return booking, nil
}

func (s *Service) checkTable(ctx context.Context, booking *domain.Booking) error {
	table, err := s.tableRepo.GetTable(ctx, booking.TenantID, *booking.AssignedTableID)
	if err != nil {
		if errors.Is(err, inventoryRepo.ErrTableNotFound) {
			return ErrTableNotFound
		}
		s.logger.Error("Update: table lookup failed: %v", err)
		return fmt.Errorf("%w: table lookup: %v", ErrInternal, err)
	}

	if booking.ZoneID == nil {
		booking.ZoneID = &table.ZoneID
	} else if *booking.ZoneID != table.ZoneID {
		return fmt.Errorf("%w: table %d is not in zone %d", ErrInvalidInput, table.ID, *booking.ZoneID)
	}
	return nil
}

func (s *Service) getByID(ctx context.Context, method string, tenantID uuid.UUID, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) getByToken(ctx context.Context, method string, tenantID, token uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, tenantID, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking token=%s not found", method, token)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for token=%s: %v", method, token, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) mapWriteError(method string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d disappeared", method, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrConflict):
		s.logger.Warn("%s: booking id=%d conflicts with another booking", method, id)
		return ErrConflict
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}

func (s *Service) notify(eventType domain.BookingEventType, booking *domain.Booking) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(domain.BookingEvent{
		Type:       eventType,
		TenantID:   booking.TenantID,
		Booking:    booking,
		OccurredAt: s.timeProvider.Now(),
	})
}

func applyPatch(b *domain.Booking, req *models.UpdateBookingRequest) error {
	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		b.Date = date
	}

	if req.Turn != nil {
		turn := domain.Turn(*req.Turn)
		if !turn.IsValid() {
			return fmt.Errorf("%w: invalid turn", ErrInvalidInput)
		}
		b.Turn = turn
	}

	if req.Time != nil {
		ts, err := types.NewTimeStringFromString(*req.Time)
		if err != nil {
			return fmt.Errorf("%w: invalid time", ErrInvalidInput)
		}
		b.Time = ts
	}

	if req.PartySize != nil {
		if *req.PartySize < domain.MinPartySize || *req.PartySize > domain.MaxPartySize {
			return fmt.Errorf("%w: party size out of range", ErrInvalidInput)
		}
		b.PartySize = *req.PartySize
	}

	if req.ZoneID != nil {
		b.ZoneID = req.ZoneID
	}

	switch {
	case req.UnassignTable:
		b.AssignedTableID = nil
	case req.AssignedTableID != nil:
		if *req.AssignedTableID <= 0 {
			return fmt.Errorf("%w: invalid table id", ErrInvalidInput)
		}
		b.AssignedTableID = req.AssignedTableID
	}

	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" || len(name) > domain.MaxNameLength {
			return fmt.Errorf("%w: invalid name", ErrInvalidInput)
		}
		b.CustomerName = name
	}
	if req.CustomerEmail != nil {
		b.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if b.CustomerEmail == "" && b.CustomerPhone == "" {
		return fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}

	if req.Comments != nil {
		if len(*req.Comments) > domain.MaxCommentLength {
			return fmt.Errorf("%w: comments too long", ErrInvalidInput)
		}
		b.Comments = req.Comments
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		b.Status = status
	}

	if req.DepositAmount != nil {
		if req.DepositAmount.IsNegative() {
			return fmt.Errorf("%w: negative deposit", ErrInvalidInput)
		}
		b.DepositAmount = *req.DepositAmount
	}

	return nil
}
