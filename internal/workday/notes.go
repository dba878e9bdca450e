package workday

import "errors"

var (
	ErrStartRequired = errors.New("start required")
	ErrMultipleOpen  = errors.New("only one open interval is allowed")
	ErrOverlap       = errors.New("intervals overlap")
)

// NoteKind classifies a row (or the target) after validation. The order of
// the row kinds is their precedence: a row keeps the first note it earns.
type NoteKind int

const (
	NoteEmptyRow NoteKind = iota + 1
	NoteFormat
	NoteOrder
	NoteMultipleOpen
	NoteOverlap
	NoteTargetFallback
)

var noteNames = map[NoteKind]string{
	NoteEmptyRow:       "empty_row",
	NoteFormat:         "format_error",
	NoteOrder:          "order_error",
	NoteMultipleOpen:   "multiple_open_intervals",
	NoteOverlap:        "overlap_error",
	NoteTargetFallback: "target_fallback",
}

func (k NoteKind) String() string {
	if n, ok := noteNames[k]; ok {
		return n
	}
	return "unknown"
}

// Blocking reports whether the note marks a problem the user has to fix.
// Empty rows are skipped silently and a target fallback only annotates.
func (k NoteKind) Blocking() bool {
	switch k {
	case NoteFormat, NoteOrder, NoteMultipleOpen, NoteOverlap:
		return true
	}
	return false
}

// RowNote attaches a note to an input row. Row is -1 for the target.
type RowNote struct {
	Row  int
	Kind NoteKind
	Err  error
}

// Blank reports an empty row that has no end text either.
func (n RowNote) Blank() bool {
	return n.Kind == NoteEmptyRow && n.Err == nil
}
