package update_settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

type SettingsService interface {
	Update(ctx context.Context, tenantID uuid.UUID, patch map[string]string) (domain.Settings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
