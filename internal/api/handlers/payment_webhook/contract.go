package payment_webhook

import (
	"context"

	"github.com/google/uuid"
)

type BookingService interface {
	ConfirmPayment(ctx context.Context, tenantID, token uuid.UUID, paymentID string) error
	ExpirePayment(ctx context.Context, tenantID, token uuid.UUID) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
