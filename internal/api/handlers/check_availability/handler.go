package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/check_availability"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgMissingParams       = "параметры date, turn и pax обязательны"
	msgInvalidParams       = "некорректные параметры: date YYYY-MM-DD, turn lunch|dinner, pax 1..50"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/availability
// Query params: date (YYYY-MM-DD), turn (lunch|dinner), pax
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/availability - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	query := r.URL.Query()
	dateStr, turn, paxStr := query.Get("date"), query.Get("turn"), query.Get("pax")
	if dateStr == "" || turn == "" || paxStr == "" {
		h.logger.Warn("GET /restaurants/{id}/availability - Missing params: tenant=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, dateStr, turn, paxStr)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/availability - Invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /restaurants/{id}/availability - Failed to check availability: tenant=%s, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/availability - tenant=%s, date=%s, turn=%s, zones=%d, strategy=%s",
		tenantID, dateStr, turn, len(result.Zones), result.Strategy)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
