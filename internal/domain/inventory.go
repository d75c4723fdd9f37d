package domain

import (
	"time"

	"github.com/google/uuid"
)

// Zone is a named dining area
type Zone struct {
	ID          int64
	TenantID    uuid.UUID
	Name        string
	NameES      string
	NameEN      string
	Description *string
	Capacity    *int
	CreatedAt   time.Time
}

// LocalizedName returns the zone name for the locale, falling back to Name
func (z *Zone) LocalizedName(locale string) string {
	switch locale {
	case "es":
		if z.NameES != "" {
			return z.NameES
		}
	case "en":
		if z.NameEN != "" {
			return z.NameEN
		}
	}
	return z.Name
}

// Table is a bookable table inside a zone
type Table struct {
	ID        int64
	TenantID  uuid.UUID
	ZoneID    int64
	Number    string
	MinPax    int
	MaxPax    int
	CreatedAt time.Time
}

// Suits reports whether the table seats a party of the given size
func (t *Table) Suits(partySize int) bool {
	return t.MinPax <= partySize && partySize <= t.MaxPax
}

// ValidRange reports whether 1 <= MinPax <= MaxPax
func (t *Table) ValidRange() bool {
	return t.MinPax >= 1 && t.MinPax <= t.MaxPax
}
