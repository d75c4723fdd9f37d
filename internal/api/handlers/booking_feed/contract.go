package booking_feed

import (
	"context"

	"github.com/google/uuid"
)

type FeedSubscriber interface {
	Stream(ctx context.Context, tenantID uuid.UUID) (<-chan []byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
