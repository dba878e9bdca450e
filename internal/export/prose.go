package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sadopc/workday/internal/workday"
)

// NoteText is the short inline message shown next to a row.
func NoteText(n workday.RowNote) string {
	switch n.Kind {
	case workday.NoteEmptyRow:
		if n.Blank() {
			return ""
		}
		return "Start required"
	case workday.NoteFormat:
		var fe *workday.FormatError
		if errors.As(n.Err, &fe) {
			field := "Start"
			if strings.HasPrefix(n.Err.Error(), "end:") {
				field = "End"
			}
			return fmt.Sprintf("%s invalid: %s", field, fe.Reason)
		}
		return "Invalid time"
	case workday.NoteOrder:
		return "End must be after Start (no cross-midnight)"
	case workday.NoteMultipleOpen:
		return "Only one open interval is allowed"
	case workday.NoteOverlap:
		return "Overlaps another interval"
	case workday.NoteTargetFallback:
		return fmt.Sprintf("Target invalid (using %s)", workday.DefaultTarget)
	}
	return ""
}

// RowText is the inline message for row: its note, or a confirmation for
// an accepted row.
func RowText(res workday.Result, row int) string {
	if n, ok := res.Validation.Note(row); ok {
		return NoteText(n)
	}
	if iv, ok := res.Interval(row); ok && iv.Open {
		return fmt.Sprintf("Open interval → using current time %s", res.Now)
	}
	return "OK"
}

var statusOrder = []workday.NoteKind{
	workday.NoteFormat,
	workday.NoteOrder,
	workday.NoteMultipleOpen,
	workday.NoteOverlap,
}

var statusText = map[workday.NoteKind]string{
	workday.NoteFormat:       "Fix invalid rows.",
	workday.NoteOrder:        "End must be after Start within the same day (no cross-midnight).",
	workday.NoteMultipleOpen: "Only one open interval is allowed.",
	workday.NoteOverlap:      "Intervals overlap.",
}

// StatusLine summarises validation in one line.
func StatusLine(res workday.Result) string {
	seen := make(map[workday.NoteKind]bool)
	for _, n := range res.Validation.Notes {
		seen[n.Kind] = true
		if n.Kind == workday.NoteEmptyRow && !n.Blank() {
			seen[workday.NoteFormat] = true
		}
	}

	var parts []string
	for _, k := range statusOrder {
		if seen[k] {
			parts = append(parts, statusText[k])
		}
	}
	if len(parts) == 0 {
		open := "No open interval."
		if res.Validation.OpenRow >= 0 {
			open = fmt.Sprintf("1 open interval using system time %s.", res.Now)
		}
		parts = append(parts, "No overlaps.", open)
	}
	if res.TargetNote != nil {
		parts = append(parts, NoteText(*res.TargetNote)+".")
	}
	return strings.Join(parts, " ")
}

// MilestoneLines returns the two milestone sentences. The second may be
// empty.
func MilestoneLines(res workday.Result) (string, string) {
	s := res.Summary
	if s.Milestone == nil {
		return "Clock unavailable, no milestone projected.", ""
	}
	at := s.Milestone.String()
	if s.NextDay {
		at += " (tomorrow)"
	}

	if s.MilestoneKind == workday.MilestoneTarget {
		return fmt.Sprintf("%s left to reach target %s.", s.Remaining, res.Target),
			fmt.Sprintf("If you keep working, you'll reach the target at: %s", at)
	}

	switch {
	case s.Overtime == 0:
		return fmt.Sprintf("Target %s reached.", res.Target),
			fmt.Sprintf("First overtime whole-hour milestone (+%s) at: %s", s.ToMilestone, at)
	case s.Overtime%workday.SecondsPerHour == 0:
		return fmt.Sprintf("Overtime: %s. You are already at a whole extra hour.", s.Overtime),
			fmt.Sprintf("Next overtime whole-hour milestone (+%s) at: %s", s.ToMilestone, at)
	}
	return fmt.Sprintf("Overtime: %s. %s more to reach extra %s.", s.Overtime, s.ToMilestone, s.OvertimeGoal),
		fmt.Sprintf("If you keep working, you'll reach that at: %s", at)
}

// Relative describes the milestone relative to the snapshot, such as
// "34 minutes from now". It is empty without a milestone.
func Relative(res workday.Result) string {
	if res.Summary.Milestone == nil || res.Taken.IsZero() {
		return ""
	}
	return humanize.RelTime(res.Taken, res.Taken.Add(res.Summary.ToMilestone.Std()), "from now", "ago")
}
