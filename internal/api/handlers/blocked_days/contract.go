package blocked_days

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

type ClosureService interface {
	BlockDay(ctx context.Context, tenantID uuid.UUID, date time.Time, reason string) (*domain.ClosedDate, error)
	UnblockDay(ctx context.Context, tenantID uuid.UUID, date time.Time) error
	GetBlockedDays(ctx context.Context, tenantID uuid.UUID) ([]*domain.ClosedDate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
