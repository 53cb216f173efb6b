package availability

import "math"

// Overlaps reports whether two (start, duration-in-hours) intervals share any
// time. Intervals are half-open: one ending exactly when the other begins
// does not overlap. Start times are "HH:MM"; a start that fails to parse
// makes the pair non-overlapping rather than an error, so garbage rows in a
// bookings snapshot never block the whole grid. Request validation upstream
// keeps malformed times out of new bookings.
func Overlaps(startA string, durationA float64, startB string, durationB float64) bool {
	beginA, err := ParseClock(startA)
	if err != nil {
		return false
	}
	beginB, err := ParseClock(startB)
	if err != nil {
		return false
	}

	endA := beginA + durationMinutes(durationA)
	endB := beginB + durationMinutes(durationB)

	return beginA < endB && beginB < endA
}

func durationMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
