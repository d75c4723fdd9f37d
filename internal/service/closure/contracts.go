package closure

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// ClosureRepository интерфейс репозитория закрытых дат
type ClosureRepository interface {
	IsClosed(ctx context.Context, tenantID uuid.UUID, date time.Time) (bool, error)
	Create(ctx context.Context, closed *domain.ClosedDate) error
	Delete(ctx context.Context, tenantID uuid.UUID, date time.Time) error
	ListFrom(ctx context.Context, tenantID uuid.UUID, from time.Time) ([]*domain.ClosedDate, error)
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
