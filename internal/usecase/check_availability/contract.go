package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// Strategy способ расчёта строгой доступности по зонам (без учёта блокировок)
type Strategy interface {
	Name() string
	Compute(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn, partySize int) ([]domain.ZoneAvailability, error)
}

// ClosureChecker правила закрытия ресторана
type ClosureChecker interface {
	IsDateClosed(ctx context.Context, tenantID uuid.UUID, date time.Time) (bool, error)
}

// SettingsProvider источник настроек ресторана
type SettingsProvider interface {
	Get(ctx context.Context, tenantID uuid.UUID) (domain.Settings, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBlockedZoneIDs(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]int64, error)
	ListActiveByDateTurn(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]*domain.Booking, error)
}

// InventoryRepository интерфейс репозитория зон и столов
type InventoryRepository interface {
	ListZones(ctx context.Context, tenantID uuid.UUID) ([]*domain.Zone, error)
	ListSuitableTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64, partySize int) ([]*domain.Table, error)
}

// AvailabilityRepository агрегирующий запрос свободных столов
type AvailabilityRepository interface {
	CountFreeTablesByZone(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn, partySize int) ([]domain.ZoneAvailability, error)
}

// MetricsRecorder учёт исходов расчёта доступности
type MetricsRecorder interface {
	IncAvailability(strategy, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
