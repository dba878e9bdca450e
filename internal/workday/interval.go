package workday

import (
	"errors"
	"fmt"
)

// ErrOrder reports an interval whose end is not after its start.
var ErrOrder = errors.New("end must be after start, no cross-midnight")

// Interval is one start/end pair. A nil End means the interval is still
// open and ends "now".
type Interval struct {
	Start TimeOfDay
	End   *TimeOfDay
}

func (i Interval) Open() bool { return i.End == nil }

// EffectiveEnd returns End, or now for an open interval.
func (i Interval) EffectiveEnd(now TimeOfDay) TimeOfDay {
	if i.End != nil {
		return *i.End
	}
	return now
}

// Duration returns the length of the interval with its open end resolved
// to now.
func (i Interval) Duration(now TimeOfDay) (Duration, error) {
	end := i.EffectiveEnd(now)
	if end <= i.Start {
		return 0, fmt.Errorf("%s-%s: %w", i.Start, end, ErrOrder)
	}
	return Duration(end - i.Start), nil
}

// EffectiveInterval is an interval of row Row with its end resolved.
type EffectiveInterval struct {
	Row   int
	Start TimeOfDay
	End   TimeOfDay
	Open  bool
}

func (e EffectiveInterval) Duration() Duration {
	return Duration(e.End - e.Start)
}

// Overlaps reports whether the two intervals share any time. Touching
// intervals do not overlap.
func (e EffectiveInterval) Overlaps(o EffectiveInterval) bool {
	return e.Start < o.End && o.Start < e.End
}
