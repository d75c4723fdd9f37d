package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, tenantID uuid.UUID, token uuid.UUID) (*domain.Booking, error)
	ListByDate(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, id int64, status domain.BookingStatus) error
	SetPaymentID(ctx context.Context, tenantID uuid.UUID, id int64, paymentID string) error
	Delete(ctx context.Context, tenantID uuid.UUID, id int64) error
}

// TableRepository поиск столов для ручного назначения
type TableRepository interface {
	GetTable(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Table, error)
}

// PaymentClient возврат депозита
type PaymentClient interface {
	Refund(ctx context.Context, booking *domain.Booking) error
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
