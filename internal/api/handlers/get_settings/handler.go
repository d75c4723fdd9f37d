package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/settings/models"
)

const msgInvalidRestaurantID = "некорректный ID ресторана"

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

// Handle GET /api/v1/restaurants/{restaurantId}/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("GET /admin/settings - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	settings, err := h.service.Get(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /admin/settings - Failed to get settings: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/settings - Settings retrieved: tenant=%s", tenantID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettings(settings))
}
