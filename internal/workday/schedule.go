package workday

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Row is the raw text of one input row.
type Row struct {
	Start string
	End   string
}

// ValidationResult holds the intervals that survived validation, sorted
// by start, and one note per rejected row in row order.
type ValidationResult struct {
	Valid   []EffectiveInterval
	Notes   []RowNote
	OpenRow int // row of the valid open interval, -1 if none
}

// Note returns the note for row, if any.
func (v ValidationResult) Note(row int) (RowNote, bool) {
	for _, n := range v.Notes {
		if n.Row == row {
			return n, true
		}
	}
	return RowNote{}, false
}

// Problems counts the blocking notes.
func (v ValidationResult) Problems() int {
	n := 0
	for _, note := range v.Notes {
		if note.Kind.Blocking() {
			n++
		}
	}
	return n
}

type candidate struct {
	row      int
	interval Interval
	note     *RowNote
}

// A rowCheck looks at a single row in isolation. It returns a note to
// reject the row; otherwise it may fill in c.interval for later checks.
type rowCheck func(r Row, c *candidate) *RowNote

// A setCheck looks at all rows that are still accepted.
type setCheck func(accepted []*candidate, now TimeOfDay)

var (
	rowChecks = []rowCheck{checkStartPresent, checkFormat, checkOrder}
	setChecks = []setCheck{checkSingleOpen, checkOpenStarted, checkOverlaps}
)

// Validate classifies every row and returns the accepted intervals with
// open ends resolved to now. Problems in one row never stop the checks
// on the others.
func Validate(rows []Row, now TimeOfDay) ValidationResult {
	all := make([]*candidate, len(rows))
	for i, r := range rows {
		c := &candidate{row: i}
		for _, check := range rowChecks {
			if note := check(r, c); note != nil {
				c.note = note
				break
			}
		}
		all[i] = c
	}

	for _, check := range setChecks {
		check(accepted(all), now)
	}

	res := ValidationResult{OpenRow: -1}
	for _, c := range all {
		if c.note != nil {
			res.Notes = append(res.Notes, *c.note)
			continue
		}
		if c.interval.Open() {
			res.OpenRow = c.row
		}
		res.Valid = append(res.Valid, effective(c, now))
	}
	sortByStart(res.Valid)
	return res
}

func accepted(all []*candidate) []*candidate {
	var out []*candidate
	for _, c := range all {
		if c.note == nil {
			out = append(out, c)
		}
	}
	return out
}

func effective(c *candidate, now TimeOfDay) EffectiveInterval {
	return EffectiveInterval{
		Row:   c.row,
		Start: c.interval.Start,
		End:   c.interval.EffectiveEnd(now),
		Open:  c.interval.Open(),
	}
}

func sortByStart(ivs []EffectiveInterval) {
	slices.SortStableFunc(ivs, func(a, b EffectiveInterval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})
}

func checkStartPresent(r Row, c *candidate) *RowNote {
	if strings.TrimSpace(r.Start) != "" {
		return nil
	}
	note := &RowNote{Row: c.row, Kind: NoteEmptyRow}
	if strings.TrimSpace(r.End) != "" {
		note.Err = ErrStartRequired
	}
	return note
}

func checkFormat(r Row, c *candidate) *RowNote {
	start, err := ParseTimeOfDay(r.Start)
	if err != nil {
		return &RowNote{Row: c.row, Kind: NoteFormat, Err: fmt.Errorf("start: %w", err)}
	}
	c.interval = Interval{Start: start}
	if strings.TrimSpace(r.End) == "" {
		return nil
	}
	end, err := ParseTimeOfDay(r.End)
	if err != nil {
		return &RowNote{Row: c.row, Kind: NoteFormat, Err: fmt.Errorf("end: %w", err)}
	}
	c.interval.End = &end
	return nil
}

func checkOrder(_ Row, c *candidate) *RowNote {
	if c.interval.Open() {
		return nil
	}
	if _, err := c.interval.Duration(0); err != nil {
		return &RowNote{Row: c.row, Kind: NoteOrder, Err: err}
	}
	return nil
}

// checkSingleOpen keeps the first open row in input order and rejects the
// rest.
func checkSingleOpen(accepted []*candidate, _ TimeOfDay) {
	seen := false
	for _, c := range accepted {
		if !c.interval.Open() {
			continue
		}
		if seen {
			c.note = &RowNote{Row: c.row, Kind: NoteMultipleOpen, Err: ErrMultipleOpen}
			continue
		}
		seen = true
	}
}

// checkOpenStarted rejects an open row whose start is not yet behind now.
func checkOpenStarted(accepted []*candidate, now TimeOfDay) {
	for _, c := range accepted {
		if !c.interval.Open() {
			continue
		}
		if _, err := c.interval.Duration(now); err != nil {
			c.note = &RowNote{Row: c.row, Kind: NoteOrder, Err: err}
		}
	}
}

// checkOverlaps compares each adjacent pair in start order. Both rows of an
// overlapping pair are rejected; touching is allowed.
func checkOverlaps(accepted []*candidate, now TimeOfDay) {
	byRow := make(map[int]*candidate, len(accepted))
	ivs := make([]EffectiveInterval, 0, len(accepted))
	for _, c := range accepted {
		byRow[c.row] = c
		ivs = append(ivs, effective(c, now))
	}
	sortByStart(ivs)

	mark := func(row int) {
		if c := byRow[row]; c.note == nil {
			c.note = &RowNote{Row: row, Kind: NoteOverlap, Err: ErrOverlap}
		}
	}
	for i := 1; i < len(ivs); i++ {
		if ivs[i-1].End > ivs[i].Start {
			mark(ivs[i-1].Row)
			mark(ivs[i].Row)
		}
	}
}
