package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/integrations/payment"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListOccupiedTableIDs(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]int64, error)
	ListBlockedZoneIDs(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]int64, error)
	SetPaymentID(ctx context.Context, tenantID uuid.UUID, id int64, paymentID string) error
}

// InventoryRepository интерфейс репозитория зон и столов
type InventoryRepository interface {
	GetZone(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Zone, error)
	GetTable(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Table, error)
	ListSuitableTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64, partySize int) ([]*domain.Table, error)
}

// ClosureChecker правила закрытия ресторана
type ClosureChecker interface {
	IsDateClosed(ctx context.Context, tenantID uuid.UUID, date time.Time) (bool, error)
}

// SettingsProvider источник настроек ресторана
type SettingsProvider interface {
	Get(ctx context.Context, tenantID uuid.UUID) (domain.Settings, error)
}

// PaymentClient клиент платёжного сервиса
type PaymentClient interface {
	CreateCheckout(ctx context.Context, booking *domain.Booking) (*payment.Checkout, error)
}

// Notifier асинхронная рассылка событий
type Notifier interface {
	Notify(event domain.BookingEvent)
}

// MetricsRecorder учёт созданных бронирований
type MetricsRecorder interface {
	IncBookingCreated(status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
