package create_block

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
)

// UseCase use case блокировки зоны или стола на смену
type UseCase struct {
	bookingRepo   BookingRepository
	inventoryRepo InventoryRepository
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case; notifier может быть nil
func NewUseCase(bookingRepo BookingRepository, inventoryRepo InventoryRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		inventoryRepo: inventoryRepo,
		notifier:      notifier,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создаёт служебное бронирование со статусом blocked
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: tenant=%s, date=%s, turn=%s, zone=%d, table=%v",
		req.TenantID, req.Date.Format(domain.DateFormat), req.Turn, req.ZoneID, req.TableID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	turn := domain.Turn(req.Turn)

	// 2. Зона должна существовать
	if _, err := uc.inventoryRepo.GetZone(ctx, req.TenantID, req.ZoneID); err != nil {
		if errors.Is(err, inventoryRepo.ErrZoneNotFound) {
			uc.logger.Warn("CreateBlock: zone id=%d not found", req.ZoneID)
			return nil, ErrZoneNotFound
		}
		uc.logger.Error("CreateBlock: failed to get zone id=%d: %v", req.ZoneID, err)
		return nil, fmt.Errorf("%w: failed to get zone: %v", ErrInternal, err)
	}

	zoneID := req.ZoneID
	booking := &domain.Booking{
		TenantID:         req.TenantID,
		Date:             domain.DateOnly(req.Date),
		Turn:             turn,
		Time:             turn.DefaultTime(),
		PartySize:        domain.BlockZonePartySize,
		ZoneID:           &zoneID,
		CustomerName:     fmt.Sprintf("%s: %s", domain.BlockNamePrefix, reason),
		CustomerEmail:    domain.BlockCustomerEmail,
		CustomerPhone:    domain.BlockCustomerPhone,
		Status:           domain.StatusBlocked,
		DepositAmount:    decimal.Zero,
		ConsumesCapacity: true,
		IsManual:         true,
	}

	// 3. Блокировка стола: стол из этой зоны, размер компании по вместимости стола
	if req.TableID != nil {
		table, err := uc.inventoryRepo.GetTable(ctx, req.TenantID, *req.TableID)
		if err != nil {
			if errors.Is(err, inventoryRepo.ErrTableNotFound) {
				uc.logger.Warn("CreateBlock: table id=%d not found", *req.TableID)
				return nil, ErrTableNotFound
			}
			uc.logger.Error("CreateBlock: failed to get table id=%d: %v", *req.TableID, err)
			return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
		}
		if table.ZoneID != req.ZoneID {
			uc.logger.Warn("CreateBlock: table id=%d is not in zone id=%d", table.ID, req.ZoneID)
			return nil, fmt.Errorf("%w: table does not belong to the zone", ErrInvalidInput)
		}

		booking.AssignedTableID = &table.ID
		booking.PartySize = table.MaxPax
		booking.CustomerName = fmt.Sprintf("%s MESA %s: %s", domain.BlockNamePrefix, table.Number, reason)
	}

	// 4. Запись
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			uc.logger.Warn("CreateBlock: table already taken: %v", err)
			return nil, ErrConflict
		}
		uc.logger.Error("CreateBlock: failed to create block: %v", err)
		return nil, fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBlock: created block id=%d", created.ID)

	if uc.notifier != nil {
		uc.notifier.Notify(domain.BookingEvent{
			Type:       domain.EventBlockCreated,
			TenantID:   created.TenantID,
			Booking:    created,
			OccurredAt: uc.timeProvider.Now(),
		})
	}

	return &Response{
		ID:              created.ID,
		Token:           created.Token,
		ZoneID:          zoneID,
		AssignedTableID: created.AssignedTableID,
		PartySize:       created.PartySize,
		CustomerName:    created.CustomerName,
		CreatedAt:       created.CreatedAt,
	}, nil
}

func validateRequest(req *Request) error {
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: restaurant id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !domain.Turn(req.Turn).IsValid() {
		return fmt.Errorf("%w: turn must be lunch or dinner", ErrInvalidInput)
	}
	if req.ZoneID <= 0 {
		return fmt.Errorf("%w: zone id is required", ErrInvalidInput)
	}
	if req.TableID != nil && *req.TableID <= 0 {
		return fmt.Errorf("%w: table id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	return nil
}
