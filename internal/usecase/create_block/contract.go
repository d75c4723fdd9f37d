package create_block

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// InventoryRepository интерфейс репозитория зон и столов
type InventoryRepository interface {
	GetZone(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Zone, error)
	GetTable(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Table, error)
}

// Notifier асинхронная рассылка событий
type Notifier interface {
	Notify(event domain.BookingEvent)
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
