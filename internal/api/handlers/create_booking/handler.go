package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData         = "некорректные данные бронирования"
	msgBookingInPast       = "выбранное время уже прошло"
	msgDateClosed          = "ресторан закрыт в выбранную дату"
	msgZoneNotFound        = "зона не найдена"
	msgTableNotFound       = "стол не найден"
	msgZoneBlocked         = "зона недоступна в выбранную смену"
	msgConflict            = "стол уже занят, проверьте доступность ещё раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/restaurants/{restaurantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false, "POST /restaurants/{id}/bookings")
}

// HandleAdmin POST /api/v1/restaurants/{restaurantId}/admin/bookings
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true, "POST /restaurants/{id}/admin/bookings")
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, manual bool, route string) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("%s - Invalid restaurant ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, manual)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid data: tenant=%s, error=%v", route, tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createBooking.ErrBookingInPast):
			h.logger.Warn("%s - Booking in the past: tenant=%s, date=%s, time=%s", route, tenantID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createBooking.ErrDateClosed):
			h.logger.Warn("%s - Restaurant closed: tenant=%s, date=%s", route, tenantID, req.Date)
			handlers.RespondUnprocessable(w, msgDateClosed)

		case errors.Is(err, createBooking.ErrZoneNotFound):
			h.logger.Warn("%s - Zone not found: tenant=%s, zone=%v", route, tenantID, req.ZoneID)
			handlers.RespondNotFound(w, msgZoneNotFound)

		case errors.Is(err, createBooking.ErrTableNotFound):
			h.logger.Warn("%s - Table not found: tenant=%s, table=%v", route, tenantID, req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createBooking.ErrZoneBlocked):
			h.logger.Warn("%s - Zone blocked: tenant=%s, zone=%v, date=%s, turn=%s", route, tenantID, req.ZoneID, req.Date, req.Turn)
			handlers.RespondConflict(w, msgZoneBlocked)

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("%s - Conflict: tenant=%s, date=%s, turn=%s", route, tenantID, req.Date, req.Turn)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("%s - Failed to create booking: tenant=%s, error=%v", route, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created: tenant=%s, booking_id=%d, status=%s", route, tenantID, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
