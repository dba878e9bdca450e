package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sadopc/workday/internal/workday"
)

var csvHeader = []string{"Row", "Start", "End", "Effective End", "Duration (s)", "Duration", "Note"}

func ToCSV(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, r); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes one line per non-blank row.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i, row := range r.Rows {
		if strings.TrimSpace(row.Start) == "" && strings.TrimSpace(row.End) == "" {
			continue
		}
		effEnd, secs, dur := "", "", ""
		if iv, ok := r.Result.Interval(i); ok {
			effEnd = iv.End.String()
			secs = strconv.Itoa(int(iv.Duration()))
			dur = workday.FormatDuration(iv.Duration())
		}
		line := []string{
			strconv.Itoa(i + 1),
			strings.TrimSpace(row.Start),
			strings.TrimSpace(row.End),
			effEnd,
			secs,
			dur,
			RowText(r.Result, i),
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
