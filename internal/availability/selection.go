package availability

import "errors"

var (
	ErrNoSlots          = errors.New("no slots shown yet")
	ErrStartUnavailable = errors.New("booking cannot start at this slot")
	ErrNotSelected      = errors.New("no start slot selected")
	ErrSubmitInFlight   = errors.New("submission already in flight")
)

// State is the lifecycle of an in-progress booking choice.
type State int

const (
	StateEmpty State = iota
	StateSlotsShown
	StateRangeSelected
	StateSubmitting
)

// Selection tracks a user's in-progress booking choice against the current
// availability snapshot. It enforces the flow: show slots, pick a valid
// start, submit once at a time, and re-validate whenever the studio, date,
// duration, or snapshot changes — clearing a start that no longer fits.
type Selection struct {
	state         State
	resolver      *Resolver
	StudioID      string
	Date          string
	DurationHours float64
	Start         Slot
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{state: StateEmpty}
}

// State returns the current lifecycle state.
func (sel *Selection) State() State { return sel.state }

// ShowSlots installs a fresh availability snapshot for a studio and date.
// Any previously chosen start is dropped unless it still fits.
func (sel *Selection) ShowSlots(studioID, date string, durationHours float64, resolver *Resolver) {
	changed := studioID != sel.StudioID || date != sel.Date
	sel.StudioID = studioID
	sel.Date = date
	sel.DurationHours = durationHours
	sel.resolver = resolver
	if changed || sel.state == StateEmpty {
		sel.Start = 0
		sel.state = StateSlotsShown
		return
	}
	sel.revalidate()
}

// PickStart chooses a start slot. It fails unless the full range for the
// current duration is available.
func (sel *Selection) PickStart(start Slot) error {
	if sel.state == StateEmpty || sel.resolver == nil {
		return ErrNoSlots
	}
	if sel.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if !sel.resolver.CanStartAt(start, sel.DurationHours) {
		return ErrStartUnavailable
	}
	sel.Start = start
	sel.state = StateRangeSelected
	return nil
}

// SetDuration changes the requested duration and re-validates the chosen
// start; a start that no longer fits is cleared.
func (sel *Selection) SetDuration(durationHours float64) {
	if sel.state == StateEmpty {
		sel.DurationHours = durationHours
		return
	}
	sel.DurationHours = durationHours
	sel.revalidate()
}

// Refresh replaces the bookings snapshot (e.g. after a conflict error told
// the user to reload availability) and re-validates the selection.
func (sel *Selection) Refresh(resolver *Resolver) {
	if sel.state == StateEmpty {
		return
	}
	sel.resolver = resolver
	sel.revalidate()
}

// Range returns the slots the current selection would occupy.
func (sel *Selection) Range() []Slot {
	if sel.state != StateRangeSelected && sel.state != StateSubmitting {
		return nil
	}
	return sel.resolver.RangeForStart(sel.Start, sel.DurationHours)
}

// BeginSubmit marks the selection as submitting, blocking duplicate submits.
func (sel *Selection) BeginSubmit() error {
	switch sel.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateRangeSelected:
		sel.state = StateSubmitting
		return nil
	default:
		return ErrNotSelected
	}
}

// SubmitSucceeded resets the selection after a confirmed booking.
func (sel *Selection) SubmitSucceeded() {
	*sel = Selection{state: StateEmpty}
}

// SubmitFailed returns to the selected state so the user can retry or
// refresh; the chosen range is kept for the error display.
func (sel *Selection) SubmitFailed() {
	if sel.state == StateSubmitting {
		sel.state = StateRangeSelected
	}
}

func (sel *Selection) revalidate() {
	if sel.state != StateRangeSelected && sel.state != StateSubmitting {
		return
	}
	if sel.resolver == nil || !sel.resolver.CanStartAt(sel.Start, sel.DurationHours) {
		sel.Start = 0
		sel.state = StateSlotsShown
	}
}
