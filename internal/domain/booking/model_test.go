package booking

import (
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
)

func TestBooking_Conflicts(t *testing.T) {
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	base := Booking{ID: "b1", CourtID: "1", Date: day, StartTime: 600, EndTime: 630, Status: StatusConfirmed}

	tests := []struct {
		name  string
		other Booking
		want  bool
	}{
		{name: "overlapping same court", other: Booking{ID: "b2", CourtID: "1", Date: day, StartTime: 600, EndTime: 660}, want: true},
		{name: "same booking id", other: Booking{ID: "b1", CourtID: "1", Date: day, StartTime: 600, EndTime: 660}, want: false},
		{name: "other court", other: Booking{ID: "b2", CourtID: "2", Date: day, StartTime: 600, EndTime: 660}, want: false},
		{name: "other date", other: Booking{ID: "b2", CourtID: "1", Date: day.AddDate(0, 0, 1), StartTime: 600, EndTime: 660}, want: false},
		{name: "adjacent window", other: Booking{ID: "b2", CourtID: "1", Date: day, StartTime: schedule.TimeOfDay(630), EndTime: 700}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Conflicts(tc.other); got != tc.want {
				t.Fatalf("Conflicts()=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestOwnerRefs(t *testing.T) {
	b := Booking{OwnerRef: SessionOwner("s1")}
	if !b.OwnedBySession() {
		t.Fatalf("expected session owned booking")
	}
	if (Booking{OwnerRef: UserOwner("u1")}).OwnedBySession() {
		t.Fatalf("user booking must not be session owned")
	}
}
