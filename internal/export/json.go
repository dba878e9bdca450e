package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type jsonExport struct {
	ExportedAt string `json:"exported_at"`
	Date       string `json:"date"`
	Now        string `json:"now"`

	Target         string `json:"target"`
	TargetFallback bool   `json:"target_fallback,omitempty"`

	Worked      string `json:"worked"`
	WorkedSec   int    `json:"worked_seconds"`
	Remaining   string `json:"remaining"`
	Overtime    string `json:"overtime"`
	Progress    int    `json:"progress_percent"`
	Milestone   string `json:"milestone,omitempty"`
	NextDay     bool   `json:"milestone_next_day,omitempty"`
	ToMilestone string `json:"to_milestone,omitempty"`

	Status string    `json:"status"`
	Rows   []jsonRow `json:"rows"`
}

type jsonRow struct {
	Row          int    `json:"row"`
	Start        string `json:"start"`
	End          string `json:"end,omitempty"`
	EffectiveEnd string `json:"effective_end,omitempty"`
	DurationSec  int    `json:"duration_seconds"`
	Duration     string `json:"duration,omitempty"`
	Valid        bool   `json:"valid"`
	Note         string `json:"note,omitempty"`
	NoteKind     string `json:"note_kind,omitempty"`
}

func ToJSON(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, r); err != nil {
		return err
	}
	return f.Close()
}

func WriteJSON(w io.Writer, r Report) error {
	res := r.Result
	s := res.Summary
	out := jsonExport{
		ExportedAt:     time.Now().UTC().Format(time.RFC3339),
		Date:           r.Date(),
		Now:            res.Now.String(),
		Target:         res.Target.String(),
		TargetFallback: res.TargetNote != nil,
		Worked:         s.Worked.String(),
		WorkedSec:      int(s.Worked),
		Remaining:      s.Remaining.String(),
		Overtime:       s.Overtime.String(),
		Progress:       s.Progress,
		Status:         StatusLine(res),
	}
	if s.Milestone != nil {
		out.Milestone = s.Milestone.String()
		out.NextDay = s.NextDay
		out.ToMilestone = s.ToMilestone.String()
	}

	for i, row := range r.Rows {
		if strings.TrimSpace(row.Start) == "" && strings.TrimSpace(row.End) == "" {
			continue
		}
		jr := jsonRow{
			Row:   i + 1,
			Start: strings.TrimSpace(row.Start),
			End:   strings.TrimSpace(row.End),
		}
		if iv, ok := res.Interval(i); ok {
			jr.Valid = true
			jr.EffectiveEnd = iv.End.String()
			jr.DurationSec = int(iv.Duration())
			jr.Duration = iv.Duration().String()
		}
		if n, ok := res.Validation.Note(i); ok {
			jr.Note = NoteText(n)
			jr.NoteKind = n.Kind.String()
		}
		out.Rows = append(out.Rows, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
