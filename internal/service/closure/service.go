package closure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	closureRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/closure"
)

// Service правила закрытия ресторана: отдельные даты и дни недели
type Service struct {
	repo         ClosureRepository
	settings     SettingsProvider
	notifier     Notifier
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса закрытых дней
func NewService(
	repo ClosureRepository,
	settings SettingsProvider,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:         repo,
		settings:     settings,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// IsDateClosed сообщает, закрыт ли ресторан в указанную дату:
// дата есть в списке закрытых или её день недели закрыт настройками.
func (s *Service) IsDateClosed(ctx context.Context, tenantID uuid.UUID, date time.Time) (bool, error) {
	date = domain.DateOnly(date)

	settings, err := s.settings.Get(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("%w: IsDateClosed - settings: %v", ErrInternal, err)
	}
	if settings.IsWeekdayClosed(date) {
		return true, nil
	}

	closed, err := s.repo.IsClosed(ctx, tenantID, date)
	if err != nil {
		s.logger.Error("IsDateClosed: tenant=%s date=%s repository error: %v", tenantID, date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: IsDateClosed - repository error: %v", ErrInternal, err)
	}

	return closed, nil
}

// BlockDay закрывает день целиком
func (s *Service) BlockDay(ctx context.Context, tenantID uuid.UUID, date time.Time, reason string) (*domain.ClosedDate, error) {
	date = domain.DateOnly(date)
	s.logger.Info("BlockDay: tenant=%s date=%s", tenantID, date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = domain.DefaultCloseReason
	}

	closed := &domain.ClosedDate{
		TenantID: tenantID,
		Date:     date,
		Reason:   &reason,
	}

	if err := s.repo.Create(ctx, closed); err != nil {
		if errors.Is(err, closureRepo.ErrAlreadyClosed) {
			s.logger.Warn("BlockDay: tenant=%s date=%s already blocked", tenantID, date.Format(domain.DateFormat))
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("BlockDay: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: BlockDay - repository error: %v", ErrInternal, err)
	}

	s.notify(domain.EventDayBlocked, tenantID, date)
	return closed, nil
}

// UnblockDay снимает закрытие дня
func (s *Service) UnblockDay(ctx context.Context, tenantID uuid.UUID, date time.Time) error {
	date = domain.DateOnly(date)
	s.logger.Info("UnblockDay: tenant=%s date=%s", tenantID, date.Format(domain.DateFormat))

	if err := s.repo.Delete(ctx, tenantID, date); err != nil {
		if errors.Is(err, closureRepo.ErrNotClosed) {
			s.logger.Warn("UnblockDay: tenant=%s date=%s not blocked", tenantID, date.Format(domain.DateFormat))
			return ErrNotBlocked
		}
		s.logger.Error("UnblockDay: tenant=%s repository error: %v", tenantID, err)
		return fmt.Errorf("%w: UnblockDay - repository error: %v", ErrInternal, err)
	}

	s.notify(domain.EventDayUnblocked, tenantID, date)
	return nil
}

// GetBlockedDays возвращает закрытые даты начиная с сегодняшнего дня
func (s *Service) GetBlockedDays(ctx context.Context, tenantID uuid.UUID) ([]*domain.ClosedDate, error) {
	today := domain.DateOnly(s.timeProvider.Now().In(s.location))

	days, err := s.repo.ListFrom(ctx, tenantID, today)
	if err != nil {
		s.logger.Error("GetBlockedDays: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetBlockedDays - repository error: %v", ErrInternal, err)
	}

	return days, nil
}

func (s *Service) notify(eventType domain.BookingEventType, tenantID uuid.UUID, date time.Time) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(domain.BookingEvent{
		Type:       eventType,
		TenantID:   tenantID,
		Date:       &date,
		OccurredAt: s.timeProvider.Now(),
	})
}
