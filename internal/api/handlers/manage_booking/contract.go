package manage_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings/models"
)

type BookingService interface {
	Update(ctx context.Context, tenantID uuid.UUID, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id int64) error
	CheckIn(ctx context.Context, tenantID uuid.UUID, id int64) (*models.BookingResponse, error)
	MarkNoShow(ctx context.Context, tenantID uuid.UUID, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
