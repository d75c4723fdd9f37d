package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	settingsService "github.com/m04kA/SMC-RestaurantBooking/internal/service/settings"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/settings/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidData         = "некорректные значения настроек"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/restaurants/{restaurantId}/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid value: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	settings, err := h.service.Update(r.Context(), tenantID, patch)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/settings - Invalid data: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
		default:
			h.logger.Error("PUT /admin/settings - Failed to update settings: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated: tenant=%s, keys=%d", tenantID, len(patch))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettings(settings))
}
