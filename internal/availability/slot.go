// Package availability computes studio time-slot availability: a fixed
// time-of-day grid, interval overlap between bookings, and the per-slot
// booked / can-start predicates the booking endpoints and portal rely on.
// Everything here is pure computation over data the caller already fetched;
// nothing in this package touches the network or the database.
package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid defaults used by studio rentals.
const (
	DefaultOpen        = "08:00"
	DefaultClose       = "22:00"
	DefaultStepMinutes = 60
)

// Slot is a point on the time-of-day grid, stored as minutes since midnight.
type Slot int

// Hour returns the hour component of the slot.
func (s Slot) Hour() int { return int(s) / 60 }

// Minute returns the minute component of the slot.
func (s Slot) Minute() int { return int(s) % 60 }

// String formats the slot as "HH:MM".
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Minute())
}

// ParseClock parses "HH:MM" (or "HH:MM:SS") into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", value)
	}
	return hour*60 + minute, nil
}

// Generate produces the ordered slot grid between start and end inclusive.
// The last slot is end itself when end lands exactly on the grid, otherwise
// the last grid point before it. A non-positive step, or one above 24 hours,
// falls back to DefaultStepMinutes; unparsable bounds fall back to the
// default opening hours. Regenerating with the same inputs always yields the
// same list.
func Generate(start, end string, stepMinutes int) []Slot {
	if stepMinutes <= 0 || stepMinutes > 24*60 {
		stepMinutes = DefaultStepMinutes
	}

	from, err := ParseClock(start)
	if err != nil {
		from, _ = ParseClock(DefaultOpen)
	}
	to, err := ParseClock(end)
	if err != nil {
		to, _ = ParseClock(DefaultClose)
	}

	var slots []Slot
	for cursor := from; cursor <= to; cursor += stepMinutes {
		slots = append(slots, Slot(cursor))
	}
	return slots
}
