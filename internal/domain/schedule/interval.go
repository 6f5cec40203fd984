package schedule

import "fmt"

// Interval is a half-open [Start, End) window within a single day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	in := Interval{Start: start, End: end}
	if err := in.Validate(); err != nil {
		return Interval{}, err
	}
	return in, nil
}

func (in Interval) Validate() error {
	if !in.Start.Valid() || !in.End.Valid() {
		return fmt.Errorf("%w: %s-%s is outside a day", ErrInvalidRange, in.Start, in.End)
	}
	if in.Start >= in.End {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRange, in.Start, in.End)
	}
	return nil
}

// Overlaps reports whether both windows share an instant. Touching
// endpoints do not overlap.
func (in Interval) Overlaps(other Interval) bool {
	return in.Start < other.End && other.Start < in.End
}

func (in Interval) String() string {
	return in.Start.String() + "-" + in.End.String()
}
