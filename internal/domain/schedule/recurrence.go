package schedule

import (
	"fmt"
	"time"
)

// Recurrence is a date range plus the ISO weekdays (1=Mon..7=Sun) it repeats on.
type Recurrence struct {
	StartDate time.Time
	EndDate   time.Time
	Weekdays  []int
}

func (r Recurrence) Validate() error {
	start, end := DateOf(r.StartDate), DateOf(r.EndDate)
	if start.After(end) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidRange, FormatDate(start), FormatDate(end))
	}
	if len(r.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidWeekday)
	}
	for _, wd := range r.Weekdays {
		if wd < 1 || wd > 7 {
			return fmt.Errorf("%w: %d is outside 1-7", ErrInvalidWeekday, wd)
		}
	}
	return nil
}

// Expand returns every date in [StartDate, EndDate] falling on one of the
// weekdays, ascending. Calling it again yields the same sequence.
func (r Recurrence) Expand() ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var days [8]bool
	for _, wd := range r.Weekdays {
		days[wd] = true
	}

	start, end := DateOf(r.StartDate), DateOf(r.EndDate)
	out := make([]time.Time, 0, int(end.Sub(start).Hours()/24)/7*len(r.Weekdays)+len(r.Weekdays))
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if days[ISOWeekday(day)] {
			out = append(out, day)
		}
	}
	return out, nil
}

// Expand is shorthand for Recurrence{...}.Expand().
func Expand(startDate, endDate time.Time, weekdays []int) ([]time.Time, error) {
	return Recurrence{StartDate: startDate, EndDate: endDate, Weekdays: weekdays}.Expand()
}
