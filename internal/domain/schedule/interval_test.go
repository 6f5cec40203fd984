package schedule

import (
	"errors"
	"testing"
)

func mustTime(t *testing.T, raw string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(raw)
	if err != nil {
		t.Fatalf("parse time %q: %v", raw, err)
	}
	return v
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "identical", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "contained", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:00", "10:30"}, want: true},
		{name: "partial", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:30", "11:30"}, want: true},
		{name: "touching end to start", a: [2]string{"10:00", "11:00"}, b: [2]string{"11:00", "12:00"}, want: false},
		{name: "touching start to end", a: [2]string{"11:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: false},
		{name: "disjoint", a: [2]string{"08:00", "09:00"}, b: [2]string{"10:00", "11:00"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Interval{Start: mustTime(t, tc.a[0]), End: mustTime(t, tc.a[1])}
			b := Interval{Start: mustTime(t, tc.b[0]), End: mustTime(t, tc.b[1])}
			if got := a.Overlaps(b); got != tc.want {
				t.Fatalf("a.Overlaps(b)=%v want=%v", got, tc.want)
			}
			if got := b.Overlaps(a); got != tc.want {
				t.Fatalf("overlap must be symmetric: b.Overlaps(a)=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestInterval_OverlapsExhaustive(t *testing.T) {
	// Every pair of valid windows on a 15 minute grid across three hours.
	const step = 15
	for as := 0; as < 180; as += step {
		for ae := as + step; ae <= 180; ae += step {
			for bs := 0; bs < 180; bs += step {
				for be := bs + step; be <= 180; be += step {
					a := Interval{Start: TimeOfDay(as), End: TimeOfDay(ae)}
					b := Interval{Start: TimeOfDay(bs), End: TimeOfDay(be)}
					shared := false
					for m := as; m < ae; m++ {
						if m >= bs && m < be {
							shared = true
							break
						}
					}
					if a.Overlaps(b) != shared {
						t.Fatalf("overlap mismatch for %s and %s: got %v want %v", a, b, a.Overlaps(b), shared)
					}
				}
			}
		}
	}
}

func TestNewInterval_RejectsInvertedRange(t *testing.T) {
	if _, err := NewInterval(mustTime(t, "11:00"), mustTime(t, "10:00")); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := NewInterval(mustTime(t, "10:00"), mustTime(t, "10:00")); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for empty window, got %v", err)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if got := mustTime(t, "09:30"); got != 9*60+30 {
		t.Fatalf("unexpected minutes: %d", got)
	}
	if got := mustTime(t, "18:45:00"); got.String() != "18:45" {
		t.Fatalf("unexpected postgres time parse: %s", got)
	}
	if _, err := ParseTimeOfDay("25:00"); !errors.Is(err, ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
}

func TestISOWeekday(t *testing.T) {
	if got := ISOWeekday(mustDate(t, "2024-01-01")); got != 1 {
		t.Fatalf("expected monday=1, got %d", got)
	}
	if got := ISOWeekday(mustDate(t, "2024-01-07")); got != 7 {
		t.Fatalf("expected sunday=7, got %d", got)
	}
}
