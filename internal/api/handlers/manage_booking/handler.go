package manage_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidData         = "некорректные данные бронирования"
	msgNotFound            = "бронирование не найдено"
	msgTableNotFound       = "стол не найден"
	msgInvalidTransition   = "недопустимая смена статуса"
	msgConflict            = "стол уже занят в эту смену"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleUpdate PATCH /api/v1/restaurants/{restaurantId}/admin/bookings/{bookingId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/bookings/{id}"

	tenantID, bookingID, ok := h.parsePath(w, r, route)
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Update(r.Context(), tenantID, bookingID, &req)
	if err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	h.logger.Info("%s - Booking updated: tenant=%s, booking_id=%d, status=%s", route, tenantID, bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleDelete DELETE /api/v1/restaurants/{restaurantId}/admin/bookings/{bookingId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/bookings/{id}"

	tenantID, bookingID, ok := h.parsePath(w, r, route)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, bookingID); err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	h.logger.Info("%s - Booking deleted: tenant=%s, booking_id=%d", route, tenantID, bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleCheckIn POST /api/v1/restaurants/{restaurantId}/admin/bookings/{bookingId}/check-in
func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/bookings/{id}/check-in"

	tenantID, bookingID, ok := h.parsePath(w, r, route)
	if !ok {
		return
	}

	booking, err := h.service.CheckIn(r.Context(), tenantID, bookingID)
	if err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	h.logger.Info("%s - Guest checked in: tenant=%s, booking_id=%d", route, tenantID, bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleNoShow POST /api/v1/restaurants/{restaurantId}/admin/bookings/{bookingId}/no-show
func (h *Handler) HandleNoShow(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/bookings/{id}/no-show"

	tenantID, bookingID, ok := h.parsePath(w, r, route)
	if !ok {
		return
	}

	booking, err := h.service.MarkNoShow(r.Context(), tenantID, bookingID)
	if err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	h.logger.Info("%s - Booking marked as no-show: tenant=%s, booking_id=%d", route, tenantID, bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) parsePath(w http.ResponseWriter, r *http.Request, route string) (uuid.UUID, int64, bool) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("%s - Invalid restaurant ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return uuid.Nil, 0, false
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return uuid.Nil, 0, false
	}

	return tenantID, bookingID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrTableNotFound):
		h.logger.Warn("%s - Table not found: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgTableNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: booking_id=%d, error=%v", route, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, bookings.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: booking_id=%d", route, bookingID)
		handlers.RespondUnprocessable(w, msgInvalidTransition)

	case errors.Is(err, bookings.ErrConflict):
		h.logger.Warn("%s - Conflict: booking_id=%d", route, bookingID)
		handlers.RespondConflict(w, msgConflict)

	default:
		h.logger.Error("%s - Failed: booking_id=%d, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
