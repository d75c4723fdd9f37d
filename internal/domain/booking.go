package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingApproval BookingStatus = "pending_approval"
	StatusPendingPayment  BookingStatus = "pending_payment"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusWaitingList     BookingStatus = "waiting_list"
	StatusCompleted       BookingStatus = "completed"
	StatusCancelled       BookingStatus = "cancelled"
	StatusBlocked         BookingStatus = "blocked"
)

// AllStatuses lists every known status
var AllStatuses = []BookingStatus{
	StatusPendingApproval,
	StatusPendingPayment,
	StatusConfirmed,
	StatusWaitingList,
	StatusCompleted,
	StatusCancelled,
	StatusBlocked,
}

// NonOccupyingStatuses never count against table occupancy
var NonOccupyingStatuses = []BookingStatus{
	StatusCancelled,
	StatusWaitingList,
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Occupies returns true if a booking in this status may hold a table
func (s BookingStatus) Occupies() bool {
	return s != StatusCancelled && s != StatusWaitingList
}

// allowedTransitions lists the statuses reachable from each non-terminal status.
// Cancellation is reachable from every non-terminal status.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingApproval: {StatusConfirmed, StatusPendingPayment, StatusCancelled},
	StatusPendingPayment:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusCompleted, StatusCancelled},
	StatusWaitingList:     {StatusPendingApproval, StatusPendingPayment, StatusConfirmed, StatusCancelled},
	StatusBlocked:         {StatusCancelled},
}

// CanTransitionTo reports whether a booking may move from s to next.
// Staying in the same status is always allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a reservation, waitlist entry or administrative block
type Booking struct {
	ID       int64
	Token    uuid.UUID // public identifier used by the customer
	TenantID uuid.UUID

	Date      time.Time
	Turn      Turn
	Time      types.TimeString
	PartySize int

	ZoneID          *int64
	AssignedTableID *int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Comments      *string

	Status           BookingStatus
	DepositAmount    decimal.Decimal
	ConsumesCapacity bool
	IsManual         bool
	PaymentID        *string

	// Denormalized zone names, filled by list queries
	ZoneNameES *string
	ZoneNameEN *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTable returns true if the booking counts against its assigned table
func (b *Booking) OccupiesTable() bool {
	return b.AssignedTableID != nil && b.ConsumesCapacity && b.Status.Occupies()
}

// IsBlock returns true for administrative blocks
func (b *Booking) IsBlock() bool {
	return b.Status == StatusBlocked
}

// IsZoneBlock returns true for a block covering the whole zone
func (b *Booking) IsZoneBlock() bool {
	return b.IsBlock() && b.AssignedTableID == nil && b.ZoneID != nil
}

// StartsAt returns the booking start moment in the restaurant location
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.Time.On(b.Date, loc)
}

// NormalizeDeposit forces a zero deposit for waitlist entries and blocks
func (b *Booking) NormalizeDeposit() {
	if b.Status == StatusWaitingList || b.Status == StatusBlocked {
		b.DepositAmount = decimal.Zero
	}
}

// BookingFilter filters admin booking lists
type BookingFilter struct {
	TenantID uuid.UUID
	Date     time.Time
	Turn     *Turn
	Status   *BookingStatus
}
