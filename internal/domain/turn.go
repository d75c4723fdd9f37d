package domain

import (
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Turn is a named service period
type Turn string

const (
	TurnLunch  Turn = "lunch"
	TurnDinner Turn = "dinner"
)

// IsValid reports whether t is lunch or dinner
func (t Turn) IsValid() bool {
	return t == TurnLunch || t == TurnDinner
}

// turnWindows holds the first and last bookable time of each turn
var turnWindows = map[Turn][2]string{
	TurnLunch:  {"13:00", "15:30"},
	TurnDinner: {"20:00", "22:30"},
}

// Window returns the first and last bookable time of the turn
func (t Turn) Window() (types.TimeString, types.TimeString) {
	w, ok := turnWindows[t]
	if !ok {
		return types.TimeString{}, types.TimeString{}
	}
	return types.MustTimeString(w[0]), types.MustTimeString(w[1])
}

// DefaultTime is the time used for administrative blocks
func (t Turn) DefaultTime() types.TimeString {
	start, _ := t.Window()
	return start
}

// TimeSlots returns the bookable times of the turn on a SlotStepMinutes grid
func (t Turn) TimeSlots() []types.TimeString {
	start, end := t.Window()
	if start.IsZero() {
		return nil
	}

	slots := make([]types.TimeString, 0)
	for current := start; !current.IsAfter(end); {
		slots = append(slots, current)
		next, err := current.AddMinutes(SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return slots
}

// Contains reports whether ts lies on the turn grid
func (t Turn) Contains(ts types.TimeString) bool {
	start, end := t.Window()
	if start.IsZero() || ts.IsBefore(start) || ts.IsAfter(end) {
		return false
	}
	return (ts.Minutes()-start.Minutes())%SlotStepMinutes == 0
}
