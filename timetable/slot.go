// ABOUTME: Defines the fixed-length Slot type and the default slot list
// ABOUTME: Slot order in the list defines what "consecutive" means

package timetable

import "time"

// SlotDuration is the fixed length of every teaching slot.
const SlotDuration = 50 * time.Minute

// Slot is a fixed 50-minute start-time bucket. Slots are compared by their
// position in the universe slot list, so "consecutive" means adjacent indices.
type Slot struct {
	Start string // "HH:MM" 24h
}

// End returns the slot's end time as "HH:MM", or the empty string when the
// start time is malformed.
func (s Slot) End() string {
	start, err := parseClock(s.Start)
	if err != nil {
		return ""
	}

	return start.Add(SlotDuration).Format("15:04")
}

// String returns the slot as a "13:40 - 14:30" range
func (s Slot) String() string {
	return s.Start + " - " + s.End()
}

// DefaultSlots returns the standard evening slot grid. Callers can override
// the list through configuration; this is only the fallback.
func DefaultSlots() []Slot {
	starts := []string{
		"13:40", "14:30", "15:20", "16:10", "17:00",
		"17:50", "18:40", "19:30", "20:20", "21:10",
	}

	slots := make([]Slot, len(starts))
	for i, start := range starts {
		slots[i] = Slot{Start: start}
	}

	return slots
}

// SlotsFromStarts builds a slot list from configured start times
func SlotsFromStarts(starts []string) []Slot {
	slots := make([]Slot, len(starts))
	for i, start := range starts {
		slots[i] = Slot{Start: start}
	}

	return slots
}
