package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/cancel_booking"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidToken        = "некорректный токен бронирования"
	msgNotFound            = "бронирование не найдено"
	msgLateCancellation    = "до визита осталось слишком мало времени, отмена невозможна"
	msgCannotCancel        = "бронирование не может быть отменено"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/restaurants/{restaurantId}/bookings/{token}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("POST /bookings/{token}/cancel - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	token, err := uuid.Parse(mux.Vars(r)["token"])
	if err != nil {
		h.logger.Warn("POST /bookings/{token}/cancel - Invalid token: %v", err)
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{TenantID: tenantID, Token: token})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{token}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{token}/cancel - Booking not found: tenant=%s, token=%s", tenantID, token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrLateCancellation):
			h.logger.Warn("POST /bookings/{token}/cancel - Late cancellation: tenant=%s, token=%s", tenantID, token)
			handlers.RespondUnprocessable(w, msgLateCancellation)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{token}/cancel - Cannot cancel: tenant=%s, token=%s", tenantID, token)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/{token}/cancel - Failed to cancel booking: tenant=%s, token=%s, error=%v",
				tenantID, token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{token}/cancel - Booking cancelled: tenant=%s, booking_id=%d, repeated=%t",
		tenantID, result.ID, result.AlreadyCancelled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
