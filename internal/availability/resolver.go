package availability

import "math"

// Booking is one existing confirmed interval for a studio and date, as
// fetched by the caller. The resolver treats it as immutable.
type Booking struct {
	StartTime     string
	DurationHours float64
}

// SlotAvailability is the derived per-slot result: whether the slot itself
// conflicts with an existing booking, and which bookings cause the conflict.
type SlotAvailability struct {
	Slot      Slot
	Booked    bool
	BlockedBy []Booking
}

// Resolver answers availability questions for one studio+date snapshot.
// It is rebuilt whenever the studio, date, or bookings snapshot changes.
type Resolver struct {
	slots       []Slot
	stepMinutes int
	bookings    []Booking
	index       map[Slot]int
}

// NewResolver builds a resolver over a generated slot grid and the existing
// bookings for the same studio and date.
func NewResolver(slots []Slot, stepMinutes int, bookings []Booking) *Resolver {
	if stepMinutes <= 0 || stepMinutes > 24*60 {
		stepMinutes = DefaultStepMinutes
	}
	index := make(map[Slot]int, len(slots))
	for i, s := range slots {
		index[s] = i
	}
	return &Resolver{
		slots:       slots,
		stepMinutes: stepMinutes,
		bookings:    bookings,
		index:       index,
	}
}

// Slots returns the candidate grid the resolver was built over.
func (r *Resolver) Slots() []Slot { return r.slots }

// SlotCount returns how many consecutive grid slots a booking of the given
// duration occupies: ceil(hours * 60 / step).
func (r *Resolver) SlotCount(durationHours float64) int {
	minutes := durationMinutes(durationHours)
	if minutes <= 0 {
		return 0
	}
	return int(math.Ceil(float64(minutes) / float64(r.stepMinutes)))
}

// SlotBooked reports whether the slot, taken as a single grid-step interval,
// intersects any existing booking. This is deliberately independent of the
// duration the user currently has selected; CanStartAt is the predicate that
// accounts for duration.
func (r *Resolver) SlotBooked(s Slot) bool {
	stepHours := float64(r.stepMinutes) / 60
	for _, b := range r.bookings {
		if Overlaps(s.String(), stepHours, b.StartTime, b.DurationHours) {
			return true
		}
	}
	return false
}

// BlockedBy returns the bookings that conflict with the slot's own grid-step
// interval, for diagnostic display.
func (r *Resolver) BlockedBy(s Slot) []Booking {
	stepHours := float64(r.stepMinutes) / 60
	var blocking []Booking
	for _, b := range r.bookings {
		if Overlaps(s.String(), stepHours, b.StartTime, b.DurationHours) {
			blocking = append(blocking, b)
		}
	}
	return blocking
}

// RangeForStart returns the consecutive slots a booking of the given duration
// would occupy starting at start. It returns nil when start is not on the
// grid or the range would run past the last generated slot ("cannot start
// here, runs past closing time"). A single-slot range at the terminal grid
// point is valid: the last slot is the day's final bookable unit.
func (r *Resolver) RangeForStart(start Slot, durationHours float64) []Slot {
	begin, ok := r.index[start]
	if !ok {
		return nil
	}
	count := r.SlotCount(durationHours)
	if count <= 0 || begin+count > len(r.slots) {
		return nil
	}
	return r.slots[begin : begin+count]
}

// CanStartAt reports whether a booking of the given duration can begin at
// start: the full range fits within the grid and no slot in it is itself
// booked. This is the predicate that gates a start-time choice.
func (r *Resolver) CanStartAt(start Slot, durationHours float64) bool {
	span := r.RangeForStart(start, durationHours)
	if len(span) != r.SlotCount(durationHours) || len(span) == 0 {
		return false
	}
	for _, s := range span {
		if r.SlotBooked(s) {
			return false
		}
	}
	return true
}

// Resolve computes the per-slot availability map for the whole grid.
func (r *Resolver) Resolve() []SlotAvailability {
	results := make([]SlotAvailability, len(r.slots))
	for i, s := range r.slots {
		blocking := r.BlockedBy(s)
		results[i] = SlotAvailability{
			Slot:      s,
			Booked:    len(blocking) > 0,
			BlockedBy: blocking,
		}
	}
	return results
}
