package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidToken        = "некорректный токен бронирования"
	msgUnknownStatus       = "неизвестный статус платежа"
	msgBookingNotFound     = "бронирование не найдено"
	msgInvalidTransition   = "бронирование не ожидает оплаты"
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

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PaymentEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tenantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid restaurant ID: %s", req.RestaurantID)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	token, err := uuid.Parse(req.BookingToken)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid booking token: %s", req.BookingToken)
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	applied := true
	switch req.Status {
	case PaymentStatusPaid:
		err = h.service.ConfirmPayment(r.Context(), tenantID, token, req.PaymentID)
	case PaymentStatusExpired:
		applied, err = h.service.ExpirePayment(r.Context(), tenantID, token)
	default:
		h.logger.Warn("POST /payments/webhook - Unknown status: %s", req.Status)
		handlers.RespondBadRequest(w, msgUnknownStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /payments/webhook - Booking not found: tenant=%s, token=%s", tenantID, token)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /payments/webhook - Invalid transition: tenant=%s, token=%s, status=%s", tenantID, token, req.Status)
			handlers.RespondUnprocessable(w, msgInvalidTransition)
		default:
			h.logger.Error("POST /payments/webhook - Failed to apply payment: tenant=%s, token=%s, error=%v", tenantID, token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Applied: tenant=%s, token=%s, status=%s, applied=%t", tenantID, token, req.Status, applied)
	handlers.RespondJSON(w, http.StatusOK, PaymentEventResponse{Status: req.Status, Applied: applied})
}
