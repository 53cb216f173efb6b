package availability

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		startA string
		durA   float64
		startB string
		durB   float64
		want   bool
	}{
		{"identical intervals", "09:00", 1, "09:00", 1, true},
		{"back to back", "09:00", 1, "10:00", 1, false},
		{"back to back reversed", "10:00", 1, "09:00", 1, false},
		{"partial overlap", "09:00", 2, "10:00", 1, true},
		{"contained interval", "09:00", 4, "10:00", 1, true},
		{"disjoint", "08:00", 1, "12:00", 2, false},
		{"half hour duration rounds", "09:00", 0.5, "09:30", 1, false},
		{"quarter past collides", "09:00", 1.25, "10:00", 1, true},
		{"malformed first start", "banana", 1, "09:00", 1, false},
		{"malformed second start", "09:00", 1, "", 1, false},
		{"both malformed", "x", 1, "y", 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.startA, tc.durA, tc.startB, tc.durB); got != tc.want {
				t.Errorf("Overlaps(%q,%v,%q,%v) = %v, want %v",
					tc.startA, tc.durA, tc.startB, tc.durB, got, tc.want)
			}
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	type iv struct {
		start string
		dur   float64
	}
	intervals := []iv{
		{"08:00", 1}, {"09:00", 2}, {"10:30", 0.5}, {"21:00", 1.5},
	}
	for _, a := range intervals {
		for _, b := range intervals {
			ab := Overlaps(a.start, a.dur, b.start, b.dur)
			ba := Overlaps(b.start, b.dur, a.start, a.dur)
			if ab != ba {
				t.Errorf("Overlaps not symmetric for %v vs %v: %v != %v", a, b, ab, ba)
			}
		}
	}
}
