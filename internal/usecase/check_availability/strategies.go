package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// AggregateStrategy считает свободные столы одним SQL-запросом
type AggregateStrategy struct {
	repo AvailabilityRepository
}

// NewAggregateStrategy создает агрегирующую стратегию
func NewAggregateStrategy(repo AvailabilityRepository) *AggregateStrategy {
	return &AggregateStrategy{repo: repo}
}

func (s *AggregateStrategy) Name() string { return StrategyAggregate }

func (s *AggregateStrategy) Compute(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn, partySize int) ([]domain.ZoneAvailability, error) {
	zones, err := s.repo.CountFreeTablesByZone(ctx, tenantID, date, turn, partySize)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate: %v", ErrStrategyFailed, err)
	}
	domain.SortAvailability(zones)
	return zones, nil
}

// RowReadStrategy читает зоны, столы и бронирования построчно и считает в памяти
type RowReadStrategy struct {
	inventory InventoryRepository
	bookings  BookingRepository
}

// NewRowReadStrategy создает построчную стратегию
func NewRowReadStrategy(inventory InventoryRepository, bookings BookingRepository) *RowReadStrategy {
	return &RowReadStrategy{inventory: inventory, bookings: bookings}
}

func (s *RowReadStrategy) Name() string { return StrategyRowRead }

func (s *RowReadStrategy) Compute(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn, partySize int) ([]domain.ZoneAvailability, error) {
	zones, err := s.inventory.ListZones(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: rowread zones: %v", ErrStrategyFailed, err)
	}

	tables, err := s.inventory.ListSuitableTables(ctx, tenantID, nil, partySize)
	if err != nil {
		return nil, fmt.Errorf("%w: rowread tables: %v", ErrStrategyFailed, err)
	}

	active, err := s.bookings.ListActiveByDateTurn(ctx, tenantID, date, turn)
	if err != nil {
		return nil, fmt.Errorf("%w: rowread bookings: %v", ErrStrategyFailed, err)
	}

	occupied := make(map[int64]struct{}, len(active))
	for _, b := range active {
		if b.OccupiesTable() {
			occupied[*b.AssignedTableID] = struct{}{}
		}
	}

	return domain.ComputeAvailability(zones, tables, occupied, nil), nil
}
