package export

import (
	"fmt"
	"strings"

	"github.com/sadopc/workday/internal/workday"
)

// Report is one recalculation pass together with the row text it was
// computed from.
type Report struct {
	Rows   []workday.Row
	Result workday.Result
}

// Date is the snapshot date, or "unknown" without a clock.
func (r Report) Date() string {
	if r.Result.Taken.IsZero() {
		return "unknown"
	}
	return r.Result.Taken.Format("2006-01-02")
}

// SummaryText renders the plain-text summary used for the clipboard and the
// text export.
func SummaryText(r Report) string {
	res := r.Result
	s := res.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", r.Date())
	fmt.Fprintf(&b, "Now: %s\n", res.Now)
	fmt.Fprintf(&b, "Target: %s\n", res.Target)
	b.WriteString("Intervals:\n")
	for _, row := range r.Rows {
		start := strings.TrimSpace(row.Start)
		end := strings.TrimSpace(row.End)
		if start == "" && end == "" {
			continue
		}
		if end == "" {
			end = "(open)"
		}
		fmt.Fprintf(&b, "  - %s → %s\n", start, end)
	}
	fmt.Fprintf(&b, "Validation: %s\n", StatusLine(res))
	fmt.Fprintf(&b, "Worked: %s\n", s.Worked)
	fmt.Fprintf(&b, "Remaining: %s\n", s.Remaining)
	fmt.Fprintf(&b, "Overtime: %s\n", s.Overtime)
	fmt.Fprintf(&b, "Progress: %d%%\n", s.Progress)

	line1, line2 := MilestoneLines(res)
	b.WriteString("Milestone:\n")
	fmt.Fprintf(&b, "  %s\n", line1)
	if line2 != "" {
		if rel := Relative(res); rel != "" {
			line2 += " (" + rel + ")"
		}
		fmt.Fprintf(&b, "  %s\n", line2)
	}
	return b.String()
}
