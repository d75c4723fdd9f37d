package manage_inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

type InventoryService interface {
	ListZones(ctx context.Context, tenantID uuid.UUID) ([]*domain.Zone, error)
	CreateZone(ctx context.Context, zone *domain.Zone) (*domain.Zone, error)
	DeleteZone(ctx context.Context, tenantID uuid.UUID, id int64) error
	ListTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64) ([]*domain.Table, error)
	CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error)
	DeleteTable(ctx context.Context, tenantID uuid.UUID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
