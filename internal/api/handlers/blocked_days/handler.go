package blocked_days

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/closure"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAlreadyBlocked      = "день уже закрыт"
	msgNotBlocked          = "день не закрыт"
)

type Handler struct {
	service ClosureService
	logger  Logger
}

func NewHandler(service ClosureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/restaurants/{restaurantId}/admin/blocked-days
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("GET /admin/blocked-days - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	days, err := h.service.GetBlockedDays(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /admin/blocked-days - Failed to list days: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/blocked-days - tenant=%s, count=%d", tenantID, len(days))
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(days))
}

// HandleBlock POST /api/v1/restaurants/{restaurantId}/admin/blocked-days
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("POST /admin/blocked-days - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var req BlockDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("POST /admin/blocked-days - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.BlockDay(r.Context(), tenantID, date, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, closure.ErrAlreadyBlocked):
			h.logger.Warn("POST /admin/blocked-days - Already blocked: tenant=%s, date=%s", tenantID, req.Date)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, closure.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /admin/blocked-days - Failed to block day: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-days - Day blocked: tenant=%s, date=%s", tenantID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(day))
}

// HandleUnblock DELETE /api/v1/restaurants/{restaurantId}/admin/blocked-days/{date}
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-days/{date} - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	dateStr := mux.Vars(r)["date"]
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-days/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.UnblockDay(r.Context(), tenantID, date); err != nil {
		switch {
		case errors.Is(err, closure.ErrNotBlocked):
			h.logger.Warn("DELETE /admin/blocked-days/{date} - Not blocked: tenant=%s, date=%s", tenantID, dateStr)
			handlers.RespondNotFound(w, msgNotBlocked)

		default:
			h.logger.Error("DELETE /admin/blocked-days/{date} - Failed to unblock day: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-days/{date} - Day unblocked: tenant=%s, date=%s", tenantID, dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
