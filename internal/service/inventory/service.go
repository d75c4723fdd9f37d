package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
)

// Service сервис зон и столов ресторана
type Service struct {
	repo   InventoryRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo InventoryRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListZones возвращает зоны ресторана
func (s *Service) ListZones(ctx context.Context, tenantID uuid.UUID) ([]*domain.Zone, error) {
	zones, err := s.repo.ListZones(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListZones: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListZones - repository error: %v", ErrInternal, err)
	}
	return zones, nil
}

// CreateZone создает зону
func (s *Service) CreateZone(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	zone.Name = strings.TrimSpace(zone.Name)
	zone.NameES = strings.TrimSpace(zone.NameES)
	zone.NameEN = strings.TrimSpace(zone.NameEN)

	if zone.Name == "" {
		zone.Name = zone.NameES
	}
	if zone.Name == "" {
		return nil, fmt.Errorf("%w: zone name is required", ErrInvalidInput)
	}
	if len(zone.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: zone name is too long", ErrInvalidInput)
	}
	if zone.NameES == "" {
		zone.NameES = zone.Name
	}
	if zone.NameEN == "" {
		zone.NameEN = zone.Name
	}
	if zone.Capacity != nil && *zone.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	created, err := s.repo.CreateZone(ctx, zone)
	if err != nil {
		s.logger.Error("CreateZone: tenant=%s repository error: %v", zone.TenantID, err)
		return nil, fmt.Errorf("%w: CreateZone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateZone: tenant=%s created zone id=%d", created.TenantID, created.ID)
	return created, nil
}

// DeleteZone удаляет зону вместе со столами
func (s *Service) DeleteZone(ctx context.Context, tenantID uuid.UUID, id int64) error {
	if err := s.repo.DeleteZone(ctx, tenantID, id); err != nil {
		if errors.Is(err, inventoryRepo.ErrZoneNotFound) {
			return ErrZoneNotFound
		}
		s.logger.Error("DeleteZone: tenant=%s zone=%d repository error: %v", tenantID, id, err)
		return fmt.Errorf("%w: DeleteZone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteZone: tenant=%s deleted zone id=%d", tenantID, id)
	return nil
}

// ListTables возвращает столы, опционально только одной зоны
func (s *Service) ListTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64) ([]*domain.Table, error) {
	tables, err := s.repo.ListTables(ctx, tenantID, zoneID)
	if err != nil {
		s.logger.Error("ListTables: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListTables - repository error: %v", ErrInternal, err)
	}
	return tables, nil
}

// ListSuitableTables возвращает столы, вмещающие компанию заданного размера
func (s *Service) ListSuitableTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64, partySize int) ([]*domain.Table, error) {
	if partySize < domain.MinPartySize {
		return nil, fmt.Errorf("%w: party size must be positive", ErrInvalidInput)
	}

	tables, err := s.repo.ListSuitableTables(ctx, tenantID, zoneID, partySize)
	if err != nil {
		s.logger.Error("ListSuitableTables: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListSuitableTables - repository error: %v", ErrInternal, err)
	}
	return tables, nil
}

// CreateTable создает стол в существующей зоне
func (s *Service) CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	table.Number = strings.TrimSpace(table.Number)
	if table.Number == "" {
		return nil, fmt.Errorf("%w: table number is required", ErrInvalidInput)
	}
	if !table.ValidRange() {
		return nil, fmt.Errorf("%w: invalid pax range %d..%d", ErrInvalidInput, table.MinPax, table.MaxPax)
	}

	if _, err := s.repo.GetZone(ctx, table.TenantID, table.ZoneID); err != nil {
		if errors.Is(err, inventoryRepo.ErrZoneNotFound) {
			return nil, ErrZoneNotFound
		}
		s.logger.Error("CreateTable: tenant=%s zone=%d lookup failed: %v", table.TenantID, table.ZoneID, err)
		return nil, fmt.Errorf("%w: CreateTable - zone lookup: %v", ErrInternal, err)
	}

	created, err := s.repo.CreateTable(ctx, table)
	if err != nil {
		if errors.Is(err, inventoryRepo.ErrInvalidReference) {
			return nil, ErrZoneNotFound
		}
		s.logger.Error("CreateTable: tenant=%s repository error: %v", table.TenantID, err)
		return nil, fmt.Errorf("%w: CreateTable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTable: tenant=%s created table id=%d in zone=%d", created.TenantID, created.ID, created.ZoneID)
	return created, nil
}

// DeleteTable удаляет стол
func (s *Service) DeleteTable(ctx context.Context, tenantID uuid.UUID, id int64) error {
	if err := s.repo.DeleteTable(ctx, tenantID, id); err != nil {
		if errors.Is(err, inventoryRepo.ErrTableNotFound) {
			return ErrTableNotFound
		}
		s.logger.Error("DeleteTable: tenant=%s table=%d repository error: %v", tenantID, id, err)
		return fmt.Errorf("%w: DeleteTable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTable: tenant=%s deleted table id=%d", tenantID, id)
	return nil
}
