package workday

import (
	"fmt"
	"math"
	"strings"
)

type MilestoneKind int

const (
	MilestoneNone MilestoneKind = iota
	MilestoneTarget
	MilestoneOvertimeHour
)

// Summary holds the aggregate numbers of one recalculation pass.
type Summary struct {
	Worked    Duration
	Remaining Duration
	Overtime  Duration
	Progress  int // percent, 0-100

	Milestone     *TimeOfDay
	MilestoneKind MilestoneKind
	ToMilestone   Duration
	OvertimeGoal  Duration // whole overtime reached at an overtime milestone
	NextDay       bool     // the milestone wrapped past midnight

	Notes []RowNote
}

// Summarize totals already-resolved intervals against target. Milestone
// fields are left for Project.
func Summarize(valid []EffectiveInterval, target Duration) Summary {
	var s Summary
	for _, iv := range valid {
		s.Worked += iv.Duration()
	}
	s.Remaining = max(0, target-s.Worked)
	s.Overtime = max(0, s.Worked-target)
	s.Progress = progress(s.Worked, target)
	return s
}

func progress(worked, target Duration) int {
	if target <= 0 {
		if worked > 0 {
			return 100
		}
		return 0
	}
	p := int(math.Round(100 * float64(worked) / float64(target)))
	return min(100, max(0, p))
}

// ResolveTarget parses the target text. Blank text means DefaultTarget;
// text that does not parse also yields DefaultTarget plus a fallback
// note.
func ResolveTarget(text string) (Duration, *RowNote) {
	if strings.TrimSpace(text) == "" {
		return DefaultTarget, nil
	}
	d, err := ParseDuration(text)
	if err != nil {
		return DefaultTarget, &RowNote{
			Row:  -1,
			Kind: NoteTargetFallback,
			Err:  fmt.Errorf("target: %w (using %s)", err, DefaultTarget),
		}
	}
	return d, nil
}
