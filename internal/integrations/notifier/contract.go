package notifier

import (
	"context"

	"github.com/google/uuid"
)

// Sink получатель уведомлений о бронированиях
type Sink interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// FeedPublisher публикует сообщения в ленту изменений ресторана
type FeedPublisher interface {
	Publish(ctx context.Context, tenantID uuid.UUID, payload []byte) error
}

// MetricsRecorder учёт доставки уведомлений
type MetricsRecorder interface {
	IncNotification(sink, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
