package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType names a ledger change
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventBookingUpdated       BookingEventType = "booking.updated"
	EventBookingDeleted       BookingEventType = "booking.deleted"
	EventBlockCreated         BookingEventType = "block.created"
	EventDayBlocked           BookingEventType = "day.blocked"
	EventDayUnblocked         BookingEventType = "day.unblocked"
)

// BookingEvent carries a full booking snapshot to notification sinks and the change feed
type BookingEvent struct {
	Type       BookingEventType
	TenantID   uuid.UUID
	Booking    *Booking
	Date       *time.Time // set for day-level events
	OccurredAt time.Time
}
