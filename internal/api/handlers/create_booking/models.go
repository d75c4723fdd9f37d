package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string  `json:"date"` // "2024-06-01"
	Turn      string  `json:"turn"` // "lunch" | "dinner"
	Time      string  `json:"time"` // "21:00"
	PartySize int     `json:"pax"`
	ZoneID    *int64  `json:"zoneId,omitempty"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Comments  *string `json:"comments,omitempty"`
	Waitlist  bool    `json:"waitlist"`

	// Только для персонала
	TableID          *int64  `json:"tableId,omitempty"`
	Status           *string `json:"status,omitempty"`
	ConsumesCapacity *bool   `json:"consumesCapacity,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64     `json:"id"`
	Token           uuid.UUID `json:"token"`
	Status          string    `json:"status"`
	ZoneID          *int64    `json:"zoneId,omitempty"`
	AssignedTableID *int64    `json:"tableId,omitempty"`
	DepositAmount   string    `json:"depositAmount"`
	CheckoutURL     *string   `json:"checkoutUrl,omitempty"`
	Message         *string   `json:"message,omitempty"`
	CreatedAt       string    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Поля персонала переносятся только при manual.
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID uuid.UUID, manual bool) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		TenantID:      tenantID,
		Date:          date,
		Turn:          r.Turn,
		Time:          r.Time,
		PartySize:     r.PartySize,
		ZoneID:        r.ZoneID,
		CustomerName:  r.Name,
		CustomerEmail: r.Email,
		CustomerPhone: r.Phone,
		Comments:      r.Comments,
		IsWaitlist:    r.Waitlist,
		IsManual:      manual,
	}

	if manual {
		req.TableID = r.TableID
		req.Status = r.Status
		req.ConsumesCapacity = r.ConsumesCapacity
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Token:           resp.Token,
		Status:          resp.Status,
		ZoneID:          resp.ZoneID,
		AssignedTableID: resp.AssignedTableID,
		DepositAmount:   resp.DepositAmount.StringFixed(2),
		CheckoutURL:     resp.CheckoutURL,
		Message:         resp.Message,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
