package domain

// Booking rules
const (
	UnboundedSlots   = 999 // reported per zone in flexible capacity mode
	SlotStepMinutes  = 15
	MinPartySize     = 1
	MaxPartySize     = 50
	MaxCommentLength = 500
	MaxNameLength    = 255
)

// Administrative block placeholders
const (
	BlockZonePartySize = 10
	BlockCustomerEmail = "bloqueo@admin.local"
	BlockCustomerPhone = "000000000"
	BlockNamePrefix    = "BLOQUEO"
	DefaultCloseReason = "Closed by Admin"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
