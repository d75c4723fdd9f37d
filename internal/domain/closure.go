package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClosedDate is a single date on which the restaurant accepts no bookings
type ClosedDate struct {
	TenantID  uuid.UUID
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
