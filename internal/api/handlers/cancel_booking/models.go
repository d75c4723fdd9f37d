package cancel_booking

import (
	"github.com/google/uuid"

	cancelBooking "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Token            uuid.UUID `json:"token"`
	Status           string    `json:"status"`
	AlreadyCancelled bool      `json:"alreadyCancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Token:            resp.Token,
		Status:           resp.Status,
		AlreadyCancelled: resp.AlreadyCancelled,
	}
}
