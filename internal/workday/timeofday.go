package workday

import (
	"fmt"
	"time"
)

const (
	SecondsPerHour = 3600
	SecondsPerDay  = 86400

	// DefaultTarget is used when no target is given or it cannot be parsed.
	DefaultTarget Duration = 8*SecondsPerHour + 30*60
)

// TimeOfDay is a number of seconds since local midnight, in [0, 86399].
type TimeOfDay int

// Duration is an elapsed number of seconds.
type Duration int

// TimeOfDayOf returns the clock reading of t, ignoring its date.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*SecondsPerHour + m*60 + s)
}

// wrap folds any second count into a single day.
func wrap(secs int) TimeOfDay {
	secs %= SecondsPerDay
	if secs < 0 {
		secs += SecondsPerDay
	}
	return TimeOfDay(secs)
}

func (t TimeOfDay) String() string {
	return FormatDuration(Duration(t))
}

// On places t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t) * time.Second)
}

func (d Duration) String() string {
	return FormatDuration(d)
}

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Second
}

// FormatDuration renders secs as zero-padded HH:MM:SS.
func FormatDuration(secs Duration) string {
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	h := secs / SecondsPerHour
	m := (secs % SecondsPerHour) / 60
	s := secs % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}
