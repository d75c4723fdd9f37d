package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// Message полный снимок бронирования для внешних получателей
type Message struct {
	Type       string           `json:"type"`
	TenantID   uuid.UUID        `json:"tenantId"`
	Booking    *BookingSnapshot `json:"booking,omitempty"`
	Date       string           `json:"date,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// BookingSnapshot состояние бронирования на момент события
type BookingSnapshot struct {
	ID               int64     `json:"id"`
	Token            uuid.UUID `json:"token"`
	Date             string    `json:"date"`
	Turn             string    `json:"turn"`
	Time             string    `json:"time"`
	PartySize        int       `json:"pax"`
	ZoneID           *int64    `json:"zoneId,omitempty"`
	AssignedTableID  *int64    `json:"tableId,omitempty"`
	CustomerName     string    `json:"name"`
	CustomerEmail    string    `json:"email"`
	CustomerPhone    string    `json:"phone"`
	Comments         *string   `json:"comments,omitempty"`
	Status           string    `json:"status"`
	DepositAmount    string    `json:"depositAmount"`
	ConsumesCapacity bool      `json:"consumesCapacity"`
	IsManual         bool      `json:"isManual"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewMessage строит сообщение из доменного события
func NewMessage(event domain.BookingEvent) Message {
	msg := Message{
		Type:       string(event.Type),
		TenantID:   event.TenantID,
		OccurredAt: event.OccurredAt,
	}

	if event.Date != nil {
		msg.Date = event.Date.Format(domain.DateFormat)
	}

	if b := event.Booking; b != nil {
		msg.Booking = &BookingSnapshot{
			ID:               b.ID,
			Token:            b.Token,
			Date:             b.Date.Format(domain.DateFormat),
			Turn:             string(b.Turn),
			Time:             b.Time.String(),
			PartySize:        b.PartySize,
			ZoneID:           b.ZoneID,
			AssignedTableID:  b.AssignedTableID,
			CustomerName:     b.CustomerName,
			CustomerEmail:    b.CustomerEmail,
			CustomerPhone:    b.CustomerPhone,
			Comments:         b.Comments,
			Status:           string(b.Status),
			DepositAmount:    b.DepositAmount.StringFixed(2),
			ConsumesCapacity: b.ConsumesCapacity,
			IsManual:         b.IsManual,
			CreatedAt:        b.CreatedAt,
		}
		if msg.Date == "" {
			msg.Date = msg.Booking.Date
		}
	}

	return msg
}
