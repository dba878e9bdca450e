package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/workday/internal/workday"
)

var sampleNow = time.Date(2026, 10, 17, 16, 30, 0, 0, time.Local)

func sampleReport() Report {
	rows := []workday.Row{
		{Start: "9:00 AM", End: "12:15 PM"},
		{Start: "1:00 PM", End: ""},
		{Start: "", End: ""},
		{Start: "18:00", End: "19:10:30"},
	}
	return Report{
		Rows:   rows,
		Result: workday.Calculate(workday.Input{Rows: rows, Target: "08:30:00"}, sampleNow),
	}
}

func reportFor(rows []workday.Row, target string, now time.Time) Report {
	return Report{Rows: rows, Result: workday.Calculate(workday.Input{Rows: rows, Target: target}, now)}
}

// ============================================================
// Text
// ============================================================

func TestSummaryText(t *testing.T) {
	text := SummaryText(sampleReport())

	want := []string{
		"Date: 2026-10-17",
		"Now: 16:30:00",
		"Target: 08:30:00",
		"  - 9:00 AM → 12:15 PM",
		"  - 1:00 PM → (open)",
		"  - 18:00 → 19:10:30",
		"Validation: No overlaps. 1 open interval using system time 16:30:00.",
		"Worked: 07:55:30",
		"Remaining: 00:34:30",
		"Overtime: 00:00:00",
		"Progress: 93%",
		"  00:34:30 left to reach target 08:30:00.",
		"  If you keep working, you'll reach the target at: 17:04:30 (34 minutes from now)",
	}
	for _, w := range want {
		if !strings.Contains(text, w) {
			t.Fatalf("summary missing %q:\n%s", w, text)
		}
	}
	if strings.Count(text, "  - ") != 3 {
		t.Fatalf("blank row should be skipped:\n%s", text)
	}
}

func TestSummaryTextWithProblems(t *testing.T) {
	rows := []workday.Row{
		{Start: "10:00", End: "11:01"},
		{Start: "11:00", End: "12:00"},
	}
	text := SummaryText(reportFor(rows, "abc", sampleNow))
	if !strings.Contains(text, "Validation: Intervals overlap. Target invalid (using 08:30:00).") {
		t.Fatalf("unexpected validation line:\n%s", text)
	}
	if !strings.Contains(text, "Worked: 00:00:00") {
		t.Fatalf("overlapping rows should not count:\n%s", text)
	}
}

// ============================================================
// Prose
// ============================================================

func TestNoteText(t *testing.T) {
	rows := []workday.Row{
		{Start: "", End: ""},
		{Start: "", End: "10:00"},
		{Start: "9:75", End: ""},
		{Start: "9:00", End: "nope"},
		{Start: "12:00", End: "11:00"},
		{Start: "6:00", End: ""},
		{Start: "7:00", End: ""},
	}
	res := workday.Calculate(workday.Input{Rows: rows}, sampleNow)

	want := []string{
		"",
		"Start required",
		"Start invalid: minutes/seconds out of range",
		"End invalid: expected H, H:MM or H:MM:SS with optional AM/PM",
		"End must be after Start (no cross-midnight)",
		"Open interval → using current time 16:30:00",
		"Only one open interval is allowed",
	}
	for i, w := range want {
		if got := RowText(res, i); got != w {
			t.Errorf("row %d: got %q, want %q", i, got, w)
		}
	}
}

func TestRowTextOK(t *testing.T) {
	r := sampleReport()
	if got := RowText(r.Result, 0); got != "OK" {
		t.Fatalf("got %q, want OK", got)
	}
}

func TestStatusLineNoOpen(t *testing.T) {
	r := reportFor([]workday.Row{{Start: "9:00", End: "10:00"}}, "", sampleNow)
	if got := StatusLine(r.Result); got != "No overlaps. No open interval." {
		t.Fatalf("got %q", got)
	}
}

func TestStatusLineOrder(t *testing.T) {
	rows := []workday.Row{
		{Start: "9:00", End: ""},
		{Start: "10:00", End: ""},
		{Start: "x", End: ""},
		{Start: "", End: "5:00"},
	}
	got := StatusLine(reportFor(rows, "", sampleNow).Result)
	want := "Fix invalid rows. Only one open interval is allowed."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMilestoneLines(t *testing.T) {
	tests := []struct {
		name  string
		rows  []workday.Row
		now   time.Time
		line1 string
		line2 string
	}{
		{
			name:  "below target",
			rows:  []workday.Row{{Start: "9:00", End: ""}},
			now:   sampleNow,
			line1: "01:00:00 left to reach target 08:30:00.",
			line2: "If you keep working, you'll reach the target at: 17:30:00",
		},
		{
			name:  "partial overtime hour",
			rows:  []workday.Row{{Start: "8:30", End: ""}},
			now:   time.Date(2026, 10, 17, 17, 40, 0, 0, time.Local),
			line1: "Overtime: 00:40:00. 00:20:00 more to reach extra 01:00:00.",
			line2: "If you keep working, you'll reach that at: 18:00:00",
		},
		{
			name:  "whole overtime hour",
			rows:  []workday.Row{{Start: "8:00", End: ""}},
			now:   time.Date(2026, 10, 17, 17, 30, 0, 0, time.Local),
			line1: "Overtime: 01:00:00. You are already at a whole extra hour.",
			line2: "Next overtime whole-hour milestone (+01:00:00) at: 18:30:00",
		},
		{
			name:  "exactly on target",
			rows:  []workday.Row{{Start: "8:00", End: ""}},
			now:   time.Date(2026, 10, 17, 16, 30, 0, 0, time.Local),
			line1: "Target 08:30:00 reached.",
			line2: "First overtime whole-hour milestone (+01:00:00) at: 17:30:00",
		},
		{
			name:  "tomorrow",
			rows:  []workday.Row{{Start: "22:00", End: ""}},
			now:   time.Date(2026, 10, 17, 23, 0, 0, 0, time.Local),
			line1: "07:30:00 left to reach target 08:30:00.",
			line2: "If you keep working, you'll reach the target at: 06:30:00 (tomorrow)",
		},
		{
			name:  "no clock",
			rows:  nil,
			now:   time.Time{},
			line1: "Clock unavailable, no milestone projected.",
			line2: "",
		},
	}
	for _, tt := range tests {
		res := workday.Calculate(workday.Input{Rows: tt.rows}, tt.now)
		l1, l2 := MilestoneLines(res)
		if l1 != tt.line1 || l2 != tt.line2 {
			t.Errorf("%s:\n got %q / %q\nwant %q / %q", tt.name, l1, l2, tt.line1, tt.line2)
		}
	}
}

func TestRelative(t *testing.T) {
	r := sampleReport()
	if got := Relative(r.Result); got != "34 minutes from now" {
		t.Fatalf("got %q", got)
	}
	noClock := workday.Calculate(workday.Input{}, time.Time{})
	if got := Relative(noClock); got != "" {
		t.Fatalf("expected empty relative without clock, got %q", got)
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleReport(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 non-blank rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}
	for i, h := range csvHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	first := records[1]
	if first[0] != "1" || first[1] != "9:00 AM" || first[2] != "12:15 PM" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if first[3] != "12:15:00" || first[4] != "11700" || first[5] != "03:15:00" || first[6] != "OK" {
		t.Fatalf("unexpected first row values: %v", first)
	}

	open := records[2]
	if open[2] != "" || open[3] != "16:30:00" || open[5] != "03:30:00" {
		t.Fatalf("unexpected open row: %v", open)
	}

	// Row numbers follow the input, blank row 3 is skipped.
	if records[3][0] != "4" {
		t.Fatalf("expected row number 4, got %q", records[3][0])
	}
}

func TestWriteCSVInvalidRow(t *testing.T) {
	var buf bytes.Buffer
	r := reportFor([]workday.Row{{Start: "12:00", End: "11:00"}}, "", sampleNow)
	if err := WriteCSV(&buf, r); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	row := records[1]
	if row[3] != "" || row[4] != "" {
		t.Fatalf("rejected row should have no duration: %v", row)
	}
	if row[6] != "End must be after Start (no cross-midnight)" {
		t.Fatalf("note = %q", row[6])
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(sampleReport(), "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleReport(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Worked != "07:55:30" || result.WorkedSec != 28530 {
		t.Fatalf("worked = %q (%d)", result.Worked, result.WorkedSec)
	}
	if result.Remaining != "00:34:30" || result.Progress != 93 {
		t.Fatalf("remaining = %q, progress = %d", result.Remaining, result.Progress)
	}
	if result.Milestone != "17:04:30" || result.NextDay {
		t.Fatalf("milestone = %q next day = %v", result.Milestone, result.NextDay)
	}
	if result.TargetFallback {
		t.Fatal("target should not have fallen back")
	}
	if len(result.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(result.Rows))
	}
	if !result.Rows[1].Valid || result.Rows[1].EffectiveEnd != "16:30:00" {
		t.Fatalf("open row: %+v", result.Rows[1])
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
}

func TestWriteJSONNotes(t *testing.T) {
	var buf bytes.Buffer
	rows := []workday.Row{{Start: "10:00", End: "11:01"}, {Start: "11:00", End: "12:00"}}
	if err := WriteJSON(&buf, reportFor(rows, "abc", sampleNow)); err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.TargetFallback || result.Target != "08:30:00" {
		t.Fatalf("target = %q fallback = %v", result.Target, result.TargetFallback)
	}
	for _, r := range result.Rows {
		if r.Valid || r.NoteKind != "overlap_error" {
			t.Fatalf("row %d: %+v", r.Row, r)
		}
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(sampleReport(), path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(sampleReport(), "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}
