package availability

import "testing"

func TestGenerate_DefaultGrid(t *testing.T) {
	slots := Generate("08:00", "22:00", 60)
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots, got %d", len(slots))
	}
	if slots[0].String() != "08:00" {
		t.Errorf("first slot = %s, want 08:00", slots[0])
	}
	if slots[len(slots)-1].String() != "22:00" {
		t.Errorf("last slot = %s, want 22:00", slots[len(slots)-1])
	}
}

func TestGenerate_StrictlyIncreasing(t *testing.T) {
	cases := []struct {
		name             string
		start, end       string
		step             int
	}{
		{"hourly full day", "08:00", "22:00", 60},
		{"half hour", "09:00", "12:00", 30},
		{"uneven step", "08:00", "10:00", 45},
		{"single slot", "10:00", "10:00", 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := Generate(tc.start, tc.end, tc.step)
			if len(slots) == 0 {
				t.Fatal("expected at least one slot")
			}
			seen := make(map[Slot]bool)
			for i, s := range slots {
				if seen[s] {
					t.Errorf("duplicate slot %s", s)
				}
				seen[s] = true
				if i > 0 && slots[i] <= slots[i-1] {
					t.Errorf("slots not strictly increasing at %d: %s <= %s", i, slots[i], slots[i-1])
				}
			}
		})
	}
}

func TestGenerate_EndOffGrid(t *testing.T) {
	// 45-minute step from 08:00 never lands on 10:00; last slot must be the
	// final grid point at or before the end.
	slots := Generate("08:00", "10:00", 45)
	last := slots[len(slots)-1]
	if last.String() != "09:30" {
		t.Errorf("last slot = %s, want 09:30", last)
	}
}

func TestGenerate_StepFallback(t *testing.T) {
	for _, step := range []int{0, -30, 100000} {
		slots := Generate("08:00", "10:00", step)
		if len(slots) != 3 {
			t.Errorf("step %d: expected fallback to 60-minute grid (3 slots), got %d", step, len(slots))
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate("08:00", "22:00", 60)
	b := Generate("08:00", "22:00", 60)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("slot %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"22:00", 1320, false},
		{"09:30:00", 570, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
		{"9", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSlotString(t *testing.T) {
	if got := Slot(480).String(); got != "08:00" {
		t.Errorf("Slot(480) = %s, want 08:00", got)
	}
	if got := Slot(1335).String(); got != "22:15" {
		t.Errorf("Slot(1335) = %s, want 22:15", got)
	}
}
