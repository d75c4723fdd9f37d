package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	inventoryRepo InventoryRepository
	closure       ClosureChecker
	settings      SettingsProvider
	paymentClient PaymentClient
	notifier      Notifier
	metrics       MetricsRecorder
	txManager     TransactionManager
	timeProvider  TimeProvider
	location      *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// paymentClient, notifier и metrics могут быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	inventoryRepo InventoryRepository,
	closure ClosureChecker,
	settings SettingsProvider,
	paymentClient PaymentClient,
	notifier Notifier,
	metrics MetricsRecorder,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		inventoryRepo: inventoryRepo,
		closure:       closure,
		settings:      settings,
		paymentClient: paymentClient,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		location:      location,
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Подбор стола и запись выполняются в одной сериализуемой транзакции;
// при конфликте возвращается ErrConflict без повторных попыток.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%s, date=%s, turn=%s, time=%s, pax=%d, zone=%v, waitlist=%t, manual=%t",
		req.TenantID, req.Date.Format(domain.DateFormat), req.Turn, req.Time, req.PartySize, req.ZoneID, req.IsWaitlist, req.IsManual)

	// 1. Валидация входных данных
	visitTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	turn := domain.Turn(req.Turn)

	// 2. Гости не могут бронировать прошедшее время
	if !req.IsManual {
		if err := validateNotInPast(date, visitTime, uc.timeProvider.Now(), uc.location); err != nil {
			uc.logger.Warn("CreateBooking: %s %s is in the past", date.Format(domain.DateFormat), visitTime)
			return nil, err
		}
	}

	// 3. Повторно проверяем закрытие дня
	closed, err := uc.closure.IsDateClosed(ctx, req.TenantID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: closure check failed: %v", err)
		return nil, fmt.Errorf("%w: closure check: %v", ErrInternal, err)
	}
	if closed {
		uc.logger.Warn("CreateBooking: tenant=%s is closed on %s", req.TenantID, date.Format(domain.DateFormat))
		return nil, ErrDateClosed
	}

	// 4. Настройки ресторана
	settings, err := uc.settings.Get(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: settings: %v", ErrInternal, err)
	}

	// 5. Проверяем зону
	if req.ZoneID != nil {
		if _, err := uc.inventoryRepo.GetZone(ctx, req.TenantID, *req.ZoneID); err != nil {
			if errors.Is(err, inventoryRepo.ErrZoneNotFound) {
				uc.logger.Warn("CreateBooking: zone id=%d not found", *req.ZoneID)
				return nil, ErrZoneNotFound
			}
			uc.logger.Error("CreateBooking: failed to get zone id=%d: %v", *req.ZoneID, err)
			return nil, fmt.Errorf("%w: failed to get zone: %v", ErrInternal, err)
		}
	}

	// 6. Депозит и статус
	deposit := decimal.Zero
	if !req.IsWaitlist {
		deposit = settings.DepositFor(req.PartySize)
	}

	status, err := decideStatus(req, settings, deposit)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	consumes := true
	if req.ConsumesCapacity != nil {
		consumes = *req.ConsumesCapacity
	}

	booking := &domain.Booking{
		TenantID:         req.TenantID,
		Date:             date,
		Turn:             turn,
		Time:             visitTime,
		PartySize:        req.PartySize,
		ZoneID:           req.ZoneID,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerEmail:    strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:    strings.TrimSpace(req.CustomerPhone),
		Comments:         req.Comments,
		Status:           status,
		DepositAmount:    deposit,
		ConsumesCapacity: consumes,
		IsManual:         req.IsManual,
	}
	booking.NormalizeDeposit()

	// 7. Назначение стола и запись в сериализуемой транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.assignTable(txCtx, booking, req.TableID); err != nil {
			return err
		}

		if !booking.IsManual {
			if err := uc.checkZoneNotBlocked(txCtx, booking); err != nil {
				return err
			}
		}

		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrConflict) {
				uc.logger.Warn("CreateBooking: conflicting write: %v", err)
				return ErrConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created = result
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure on commit")
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d status=%s table=%v", created.ID, created.Status, created.AssignedTableID)

	resp := &Response{
		ID:              created.ID,
		Token:           created.Token,
		Status:          string(created.Status),
		ZoneID:          created.ZoneID,
		AssignedTableID: created.AssignedTableID,
		DepositAmount:   created.DepositAmount,
		CreatedAt:       created.CreatedAt,
	}

	// 8. Платёжная сессия для депозита; ошибка не отменяет бронирование
	if created.Status == domain.StatusPendingPayment {
		resp.CheckoutURL = uc.startCheckout(ctx, created)
	}

	if created.Status == domain.StatusPendingApproval {
		msg := settings.ManualValidationMessage
		resp.Message = &msg
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(string(created.Status))
	}

	if uc.notifier != nil {
		uc.notifier.Notify(domain.BookingEvent{
			Type:       domain.EventBookingCreated,
			TenantID:   created.TenantID,
			Booking:    created,
			OccurredAt: uc.timeProvider.Now(),
		})
	}

	return resp, nil
}

// assignTable проверяет выбранный стол или подбирает первый свободный в зоне
func (uc *UseCase) assignTable(ctx context.Context, booking *domain.Booking, tableID *int64) error {
	occupiesCapacity := booking.ConsumesCapacity && booking.Status.Occupies()

	if tableID != nil {
		table, err := uc.inventoryRepo.GetTable(ctx, booking.TenantID, *tableID)
		if err != nil {
			if errors.Is(err, inventoryRepo.ErrTableNotFound) {
				uc.logger.Warn("CreateBooking: table id=%d not found", *tableID)
				return ErrTableNotFound
			}
			return fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
		}

		if booking.ZoneID != nil && *booking.ZoneID != table.ZoneID {
			uc.logger.Warn("CreateBooking: table id=%d is not in zone id=%d", table.ID, *booking.ZoneID)
			return fmt.Errorf("%w: table does not belong to the zone", ErrInvalidInput)
		}
		booking.ZoneID = &table.ZoneID
		booking.AssignedTableID = &table.ID

		if !occupiesCapacity {
			return nil
		}

		occupied, err := uc.occupied(ctx, booking)
		if err != nil {
			return err
		}
		if _, taken := occupied[table.ID]; taken {
			uc.logger.Warn("CreateBooking: table id=%d already taken", table.ID)
			return ErrConflict
		}
		return nil
	}

	if !occupiesCapacity || booking.ZoneID == nil {
		return nil
	}

	suitable, err := uc.inventoryRepo.ListSuitableTables(ctx, booking.TenantID, booking.ZoneID, booking.PartySize)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list suitable tables: %v", err)
		return fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	occupied, err := uc.occupied(ctx, booking)
	if err != nil {
		return err
	}

	table := domain.FirstFreeTable(suitable, occupied)
	if table == nil {
		uc.logger.Warn("CreateBooking: no free table in zone id=%d for pax=%d, booking stays unassigned",
			*booking.ZoneID, booking.PartySize)
		return nil
	}

	booking.AssignedTableID = &table.ID
	return nil
}

// checkZoneNotBlocked отклоняет гостевую бронь в зону с блокировкой на смену
func (uc *UseCase) checkZoneNotBlocked(ctx context.Context, booking *domain.Booking) error {
	if booking.ZoneID == nil {
		return nil
	}

	ids, err := uc.bookingRepo.ListBlockedZoneIDs(ctx, booking.TenantID, booking.Date, booking.Turn)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return ErrConflict
		}
		uc.logger.Error("CreateBooking: failed to list blocked zones: %v", err)
		return fmt.Errorf("%w: failed to list blocked zones: %v", ErrInternal, err)
	}

	if _, blocked := domain.IDSet(ids)[*booking.ZoneID]; blocked {
		uc.logger.Warn("CreateBooking: zone id=%d is blocked on %s %s",
			*booking.ZoneID, booking.Date.Format(domain.DateFormat), booking.Turn)
		return ErrZoneBlocked
	}
	return nil
}

func (uc *UseCase) occupied(ctx context.Context, booking *domain.Booking) (map[int64]struct{}, error) {
	ids, err := uc.bookingRepo.ListOccupiedTableIDs(ctx, booking.TenantID, booking.Date, booking.Turn)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, ErrConflict
		}
		uc.logger.Error("CreateBooking: failed to list occupied tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list occupied tables: %v", ErrInternal, err)
	}
	return domain.IDSet(ids), nil
}

func (uc *UseCase) startCheckout(ctx context.Context, booking *domain.Booking) *string {
	if uc.paymentClient == nil {
		uc.logger.Warn("CreateBooking: payment client not configured, booking id=%d awaits manual payment", booking.ID)
		return nil
	}

	checkout, err := uc.paymentClient.CreateCheckout(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: checkout failed for booking id=%d: %v", booking.ID, err)
		return nil
	}

	if checkout.PaymentID != "" {
		if err := uc.bookingRepo.SetPaymentID(ctx, booking.TenantID, booking.ID, checkout.PaymentID); err != nil {
			uc.logger.Error("CreateBooking: failed to store payment id for booking id=%d: %v", booking.ID, err)
		} else {
			booking.PaymentID = &checkout.PaymentID
		}
	}

	return &checkout.URL
}
