package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByToken(ctx context.Context, tenantID uuid.UUID, token uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, id int64, status domain.BookingStatus) error
}

// SettingsProvider источник настроек ресторана
type SettingsProvider interface {
	Get(ctx context.Context, tenantID uuid.UUID) (domain.Settings, error)
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
