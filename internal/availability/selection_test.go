package availability

import "testing"

func newTestResolver(bookings []Booking) *Resolver {
	return NewResolver(Generate("08:00", "22:00", 60), 60, bookings)
}

func TestSelection_Flow(t *testing.T) {
	sel := NewSelection()
	if sel.State() != StateEmpty {
		t.Fatal("new selection should be empty")
	}
	if err := sel.PickStart(Slot(480)); err != ErrNoSlots {
		t.Errorf("PickStart before ShowSlots: got %v, want ErrNoSlots", err)
	}

	sel.ShowSlots("studio-1", "2026-09-01", 2, newTestResolver(nil))
	if sel.State() != StateSlotsShown {
		t.Fatalf("state = %v, want SlotsShown", sel.State())
	}

	if err := sel.PickStart(mustSlot(t, "09:00")); err != nil {
		t.Fatalf("PickStart: %v", err)
	}
	if sel.State() != StateRangeSelected {
		t.Fatalf("state = %v, want RangeSelected", sel.State())
	}
	if got := len(sel.Range()); got != 2 {
		t.Errorf("range length = %d, want 2", got)
	}

	if err := sel.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if err := sel.BeginSubmit(); err != ErrSubmitInFlight {
		t.Errorf("duplicate submit: got %v, want ErrSubmitInFlight", err)
	}

	sel.SubmitSucceeded()
	if sel.State() != StateEmpty {
		t.Errorf("after success state = %v, want Empty", sel.State())
	}
}

func TestSelection_SubmitFailureKeepsRange(t *testing.T) {
	sel := NewSelection()
	sel.ShowSlots("studio-1", "2026-09-01", 1, newTestResolver(nil))
	if err := sel.PickStart(mustSlot(t, "10:00")); err != nil {
		t.Fatal(err)
	}
	if err := sel.BeginSubmit(); err != nil {
		t.Fatal(err)
	}

	sel.SubmitFailed()
	if sel.State() != StateRangeSelected {
		t.Errorf("after failure state = %v, want RangeSelected", sel.State())
	}
	if sel.Range() == nil {
		t.Error("range should survive a failed submit for the error display")
	}
}

func TestSelection_PickBlockedStart(t *testing.T) {
	sel := NewSelection()
	sel.ShowSlots("studio-1", "2026-09-01", 1, newTestResolver([]Booking{
		{StartTime: "10:00", DurationHours: 1},
	}))
	if err := sel.PickStart(mustSlot(t, "10:00")); err != ErrStartUnavailable {
		t.Errorf("got %v, want ErrStartUnavailable", err)
	}
}

func TestSelection_DurationChangeClearsStart(t *testing.T) {
	sel := NewSelection()
	sel.ShowSlots("studio-1", "2026-09-01", 1, newTestResolver(nil))

	// Pick the terminal slot: fine for one hour, impossible for two.
	if err := sel.PickStart(mustSlot(t, "22:00")); err != nil {
		t.Fatal(err)
	}
	sel.SetDuration(2)
	if sel.State() != StateSlotsShown {
		t.Errorf("state = %v, want SlotsShown after start stopped fitting", sel.State())
	}

	// A duration change that still fits keeps the selection.
	if err := sel.PickStart(mustSlot(t, "09:00")); err != nil {
		t.Fatal(err)
	}
	sel.SetDuration(3)
	if sel.State() != StateRangeSelected {
		t.Errorf("state = %v, want RangeSelected for a still-valid start", sel.State())
	}
}

func TestSelection_RefreshInvalidatesStaleStart(t *testing.T) {
	sel := NewSelection()
	sel.ShowSlots("studio-1", "2026-09-01", 2, newTestResolver(nil))
	if err := sel.PickStart(mustSlot(t, "09:00")); err != nil {
		t.Fatal(err)
	}

	// Another customer booked 10:00 meanwhile; a refreshed snapshot must
	// clear the now-conflicting selection.
	sel.Refresh(newTestResolver([]Booking{{StartTime: "10:00", DurationHours: 1}}))
	if sel.State() != StateSlotsShown {
		t.Errorf("state = %v, want SlotsShown after refresh invalidated start", sel.State())
	}
}

func TestSelection_StudioChangeDropsStart(t *testing.T) {
	sel := NewSelection()
	sel.ShowSlots("studio-1", "2026-09-01", 1, newTestResolver(nil))
	if err := sel.PickStart(mustSlot(t, "09:00")); err != nil {
		t.Fatal(err)
	}

	sel.ShowSlots("studio-2", "2026-09-01", 1, newTestResolver(nil))
	if sel.State() != StateSlotsShown {
		t.Errorf("state = %v, want SlotsShown after studio change", sel.State())
	}
}
