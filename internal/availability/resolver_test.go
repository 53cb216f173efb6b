package availability

import "testing"

func mustSlot(t *testing.T, value string) Slot {
	t.Helper()
	m, err := ParseClock(value)
	if err != nil {
		t.Fatalf("bad slot %q: %v", value, err)
	}
	return Slot(m)
}

func TestResolver_SlotBooked(t *testing.T) {
	slots := Generate("08:00", "12:00", 60)
	r := NewResolver(slots, 60, []Booking{
		{StartTime: "09:00", DurationHours: 2},
	})

	cases := []struct {
		slot   string
		booked bool
	}{
		{"08:00", false},
		{"09:00", true},
		{"10:00", true},
		{"11:00", false},
		{"12:00", false},
	}
	for _, tc := range cases {
		if got := r.SlotBooked(mustSlot(t, tc.slot)); got != tc.booked {
			t.Errorf("SlotBooked(%s) = %v, want %v", tc.slot, got, tc.booked)
		}
	}
}

func TestResolver_SlotCount(t *testing.T) {
	r := NewResolver(Generate("08:00", "22:00", 60), 60, nil)
	cases := []struct {
		hours float64
		want  int
	}{
		{1, 1},
		{2, 2},
		{0.5, 1},
		{1.5, 2},
		{2.25, 3},
		{0, 0},
	}
	for _, tc := range cases {
		if got := r.SlotCount(tc.hours); got != tc.want {
			t.Errorf("SlotCount(%v) = %d, want %d", tc.hours, got, tc.want)
		}
	}
}

func TestResolver_RangeForStart(t *testing.T) {
	slots := Generate("08:00", "22:00", 60)
	r := NewResolver(slots, 60, nil)

	span := r.RangeForStart(mustSlot(t, "09:00"), 3)
	if len(span) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(span))
	}
	want := []string{"09:00", "10:00", "11:00"}
	for i, s := range span {
		if s.String() != want[i] {
			t.Errorf("range[%d] = %s, want %s", i, s, want[i])
		}
	}
}

func TestResolver_RangeForStart_PastClosing(t *testing.T) {
	slots := Generate("08:00", "22:00", 60)
	r := NewResolver(slots, 60, nil)

	// Two slots starting at the last generated slot run past closing time.
	if span := r.RangeForStart(mustSlot(t, "22:00"), 2); span != nil {
		t.Errorf("expected empty range, got %v", span)
	}
	// One slot at the terminal grid point is the day's final bookable unit.
	if span := r.RangeForStart(mustSlot(t, "22:00"), 1); len(span) != 1 {
		t.Errorf("expected terminal slot to be bookable for 1 hour, got %v", span)
	}
}

func TestResolver_RangeForStart_OffGrid(t *testing.T) {
	r := NewResolver(Generate("08:00", "22:00", 60), 60, nil)
	if span := r.RangeForStart(mustSlot(t, "08:30"), 1); span != nil {
		t.Errorf("off-grid start should yield no range, got %v", span)
	}
}

func TestResolver_CanStartAt_Scenario(t *testing.T) {
	// Grid 08:00-10:00 hourly, one existing booking 09:00 for 1 hour.
	slots := Generate("08:00", "10:00", 60)
	r := NewResolver(slots, 60, []Booking{
		{StartTime: "09:00", DurationHours: 1},
	})

	cases := []struct {
		start string
		hours float64
		want  bool
	}{
		{"08:00", 1, true},
		{"09:00", 1, false},
		{"10:00", 1, true}, // terminal unit ends at the closing boundary
		{"08:00", 2, false}, // range crosses the 09:00 booking
		{"10:00", 2, false}, // runs past closing
	}
	for _, tc := range cases {
		if got := r.CanStartAt(mustSlot(t, tc.start), tc.hours); got != tc.want {
			t.Errorf("CanStartAt(%s, %v) = %v, want %v", tc.start, tc.hours, got, tc.want)
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	slots := Generate("08:00", "11:00", 60)
	booking := Booking{StartTime: "09:00", DurationHours: 1.5}
	r := NewResolver(slots, 60, []Booking{booking})

	results := r.Resolve()
	if len(results) != len(slots) {
		t.Fatalf("expected %d results, got %d", len(slots), len(results))
	}

	wantBooked := map[string]bool{
		"08:00": false,
		"09:00": true,
		"10:00": true, // 09:00+1.5h spills into the 10:00 slot
		"11:00": false,
	}
	for _, res := range results {
		want := wantBooked[res.Slot.String()]
		if res.Booked != want {
			t.Errorf("slot %s booked = %v, want %v", res.Slot, res.Booked, want)
		}
		if want && len(res.BlockedBy) == 0 {
			t.Errorf("slot %s should carry its blocking interval", res.Slot)
		}
		if want && res.BlockedBy[0].StartTime != booking.StartTime {
			t.Errorf("slot %s blocked by %s, want %s", res.Slot, res.BlockedBy[0].StartTime, booking.StartTime)
		}
	}
}

func TestResolver_MalformedBookingFailsOpen(t *testing.T) {
	slots := Generate("08:00", "10:00", 60)
	r := NewResolver(slots, 60, []Booking{
		{StartTime: "not-a-time", DurationHours: 4},
	})
	for _, s := range slots {
		if r.SlotBooked(s) {
			t.Errorf("malformed booking must not block slot %s", s)
		}
	}
}
