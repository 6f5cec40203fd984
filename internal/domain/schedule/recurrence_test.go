package schedule

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return d
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, FormatDate(d))
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		weekdays []int
		want     []string
	}{
		{
			name:     "mondays and wednesdays over two weeks",
			start:    "2024-01-01",
			end:      "2024-01-14",
			weekdays: []int{1, 3},
			want:     []string{"2024-01-01", "2024-01-03", "2024-01-08", "2024-01-10"},
		},
		{
			name:     "inclusive on both ends",
			start:    "2024-03-04",
			end:      "2024-03-13",
			weekdays: []int{3, 1},
			want:     []string{"2024-03-04", "2024-03-06", "2024-03-11", "2024-03-13"},
		},
		{
			name:     "single day range matching",
			start:    "2024-01-07",
			end:      "2024-01-07",
			weekdays: []int{7},
			want:     []string{"2024-01-07"},
		},
		{
			name:     "single day range not matching",
			start:    "2024-01-07",
			end:      "2024-01-07",
			weekdays: []int{1},
			want:     []string{},
		},
		{
			name:     "duplicate weekdays do not duplicate dates",
			start:    "2024-01-01",
			end:      "2024-01-07",
			weekdays: []int{5, 5},
			want:     []string{"2024-01-05"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expand(mustDate(t, tc.start), mustDate(t, tc.end), tc.weekdays)
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			gotDates := formatDates(got)
			if len(gotDates) != len(tc.want) {
				t.Fatalf("unexpected dates: got=%v want=%v", gotDates, tc.want)
			}
			for i := range tc.want {
				if gotDates[i] != tc.want[i] {
					t.Fatalf("unexpected date at %d: got=%s want=%s", i, gotDates[i], tc.want[i])
				}
			}
		})
	}
}

func TestExpand_IsRestartable(t *testing.T) {
	r := Recurrence{StartDate: mustDate(t, "2024-02-01"), EndDate: mustDate(t, "2024-02-29"), Weekdays: []int{2, 4}}

	first, err := r.Expand()
	if err != nil {
		t.Fatalf("first expand: %v", err)
	}
	second, err := r.Expand()
	if err != nil {
		t.Fatalf("second expand: %v", err)
	}
	if len(first) != len(second) || len(first) != 8 {
		t.Fatalf("expected 8 dates twice, got %d and %d", len(first), len(second))
	}
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		weekdays  []int
		targetErr error
	}{
		{name: "start after end", start: "2024-01-10", end: "2024-01-01", weekdays: []int{1}, targetErr: ErrInvalidRange},
		{name: "empty weekdays", start: "2024-01-01", end: "2024-01-10", weekdays: nil, targetErr: ErrInvalidWeekday},
		{name: "weekday zero", start: "2024-01-01", end: "2024-01-10", weekdays: []int{0}, targetErr: ErrInvalidWeekday},
		{name: "weekday eight", start: "2024-01-01", end: "2024-01-10", weekdays: []int{1, 8}, targetErr: ErrInvalidWeekday},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Expand(mustDate(t, tc.start), mustDate(t, tc.end), tc.weekdays)
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}
