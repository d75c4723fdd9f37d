package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_block"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData         = "некорректные данные блокировки: нужны turn, zoneId и reason"
	msgZoneNotFound        = "зона не найдена"
	msgTableNotFound       = "стол не найден"
	msgConflict            = "стол уже занят в эту смену"
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/restaurants/{restaurantId}/admin/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBlock.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocks - Invalid data: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createBlock.ErrZoneNotFound):
			h.logger.Warn("POST /admin/blocks - Zone not found: tenant=%s, zone=%d", tenantID, req.ZoneID)
			handlers.RespondNotFound(w, msgZoneNotFound)

		case errors.Is(err, createBlock.ErrTableNotFound):
			h.logger.Warn("POST /admin/blocks - Table not found: tenant=%s, table=%v", tenantID, req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createBlock.ErrConflict):
			h.logger.Warn("POST /admin/blocks - Table taken: tenant=%s, table=%v", tenantID, req.TableID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /admin/blocks - Failed to create block: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocks - Block created: tenant=%s, block_id=%d, zone=%d", tenantID, result.ID, result.ZoneID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
