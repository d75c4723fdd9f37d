package settings

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetAll(ctx context.Context, tenantID uuid.UUID) (map[string]string, error)
	Upsert(ctx context.Context, tenantID uuid.UUID, values map[string]string) error
}

// Cache кэш сырых настроек
type Cache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (map[string]string, error)
	Set(ctx context.Context, tenantID uuid.UUID, values map[string]string) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
