package workday

import "time"

// Input is everything the presentation layer hands over for one pass.
type Input struct {
	Rows   []Row
	Target string
}

// Result is the outcome of one recalculation pass.
type Result struct {
	Taken      time.Time // the clock snapshot; zero when the clock was unavailable
	Now        TimeOfDay
	Target     Duration
	TargetNote *RowNote
	Validation ValidationResult
	Summary    Summary
}

// Calculate validates the rows and derives the summary and milestone.
// now is read once and used for every open interval and the projection;
// a zero now means the clock could not be read and no milestone is
// projected.
func Calculate(in Input, now time.Time) Result {
	var nowTOD *TimeOfDay
	res := Result{Taken: now}
	if !now.IsZero() {
		t := TimeOfDayOf(now)
		nowTOD = &t
		res.Now = t
	}

	res.Target, res.TargetNote = ResolveTarget(in.Target)
	res.Validation = Validate(in.Rows, res.Now)
	res.Summary = Summarize(res.Validation.Valid, res.Target)
	res.Summary.milestone(res.Target, nowTOD)

	res.Summary.Notes = append(res.Summary.Notes, res.Validation.Notes...)
	if res.TargetNote != nil {
		res.Summary.Notes = append(res.Summary.Notes, *res.TargetNote)
	}
	return res
}

// Interval returns the parsed interval of row i when it was accepted.
func (r Result) Interval(row int) (EffectiveInterval, bool) {
	for _, iv := range r.Validation.Valid {
		if iv.Row == row {
			return iv, true
		}
	}
	return EffectiveInterval{}, false
}
