package list_bookings

import (
	"errors"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings/models"
)

// ErrMissingDate параметр date обязателен
var ErrMissingDate = errors.New("date is required")

// ToServiceRequest конвертирует query параметры в запрос сервиса
func ToServiceRequest(tenantID uuid.UUID, dateStr, turnStr, statusStr string) (*models.ListBookingsRequest, error) {
	if dateStr == "" {
		return nil, ErrMissingDate
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.ListBookingsRequest{
		TenantID: tenantID,
		Date:     date,
	}
	if turnStr != "" {
		req.Turn = &turnStr
	}
	if statusStr != "" {
		req.Status = &statusStr
	}
	return req, nil
}
