package workday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrFormat matches every *FormatError.
var ErrFormat = errors.New("invalid time format")

// FormatError reports text that is not a valid time or duration.
type FormatError struct {
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Text == "" {
		return e.Reason
	}
	return fmt.Sprintf("%q: %s", e.Text, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2})(?::(\d{2})(?::(\d{2}))?)?\s*([ap]m)?$`)
	durationPattern = regexp.MustCompile(`^(\d{1,6})(?::(\d{2})(?::(\d{2}))?)?$`)
)

// ParseTimeOfDay accepts H, H:MM and H:MM:SS in 24-hour form, or the same
// followed by AM/PM (with or without a space) in 12-hour form.
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, &FormatError{Text: text, Reason: "empty time"}
	}
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Text: text, Reason: "expected H, H:MM or H:MM:SS with optional AM/PM"}
	}
	h, mm, ss, err := fields(text, m[1], m[2], m[3])
	if err != nil {
		return 0, err
	}

	switch m[4] {
	case "am", "pm":
		if h < 1 || h > 12 {
			return 0, &FormatError{Text: text, Reason: "hour out of range for 12-hour time"}
		}
		if h == 12 {
			h = 0
		}
		if m[4] == "pm" {
			h += 12
		}
	default:
		if h > 23 {
			return 0, &FormatError{Text: text, Reason: "hour out of range for 24-hour time"}
		}
	}
	return TimeOfDay(h*SecondsPerHour + mm*60 + ss), nil
}

// ParseDuration accepts H, H:MM and H:MM:SS as an elapsed amount. The hour
// field has no upper bound.
func ParseDuration(text string) (Duration, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &FormatError{Text: text, Reason: "empty duration"}
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Text: text, Reason: "expected H, H:MM or H:MM:SS"}
	}
	h, mm, ss, err := fields(text, m[1], m[2], m[3])
	if err != nil {
		return 0, err
	}
	return Duration(h*SecondsPerHour + mm*60 + ss), nil
}

// fields converts the captured groups; missing minutes or seconds are zero.
// The patterns only capture ASCII digits, so Atoi cannot fail here.
func fields(text, hs, ms, ss string) (h, m, s int, err error) {
	h, _ = strconv.Atoi(hs)
	if ms != "" {
		m, _ = strconv.Atoi(ms)
	}
	if ss != "" {
		s, _ = strconv.Atoi(ss)
	}
	if m > 59 || s > 59 {
		return 0, 0, 0, &FormatError{Text: text, Reason: "minutes/seconds out of range"}
	}
	return h, m, s, nil
}
