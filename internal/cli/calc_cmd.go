package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/workday/internal/export"
	"github.com/sadopc/workday/internal/store"
	"github.com/sadopc/workday/internal/workday"
)

var errRejected = errors.New("some rows were rejected")

func newCalcCmd(app *App) *cobra.Command {
	var (
		rows   []string
		target string
		now    string
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run one calculation and print the summary",
		Example: `  workday calc --row "9:00 AM,12:15 PM" --row "1:00 PM"
  workday calc --row 9-12 --target 7:30 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("target") {
				target = app.Store.GetSettingOr(store.KeyTarget, app.Config.Target)
			}

			clock := app.now()
			if now != "" {
				t, err := workday.ParseTimeOfDay(now)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				clock = t.On(clock)
			}

			in := workday.Input{Target: target}
			for _, r := range rows {
				in.Rows = append(in.Rows, parseRow(r))
			}
			report := export.Report{Rows: in.Rows, Result: workday.Calculate(in, clock)}

			app.Logger.Info("calculated",
				zap.Int("rows", len(in.Rows)),
				zap.Stringer("worked", report.Result.Summary.Worked),
				zap.Int("problems", report.Result.Validation.Problems()),
				zap.String("format", format),
			)

			out := cmd.OutOrStdout()
			if err := writeReport(out, report, format); err != nil {
				return err
			}
			if strict && report.Result.Validation.Problems() > 0 {
				return fmt.Errorf("%w: %s", errRejected, export.StatusLine(report.Result))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&rows, "row", nil, `Interval as "start,end" or "start-end"; omit the end for the open interval (repeatable)`)
	cmd.Flags().StringVar(&target, "target", "", "Daily target as H, H:MM or H:MM:SS (default from settings or config)")
	cmd.Flags().StringVar(&now, "now", "", "Use this clock time instead of the system clock")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, csv")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any row is rejected")

	return cmd
}

// parseRow splits "start,end". A dash also separates the fields when
// there is no comma, which covers "9-17" and "9:00 AM-12:15 PM".
func parseRow(s string) workday.Row {
	sep := ","
	if !strings.Contains(s, ",") {
		sep = "-"
	}
	start, end, _ := strings.Cut(s, sep)
	return workday.Row{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
}

func writeReport(w io.Writer, r export.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return export.WriteJSON(w, r)
	case "csv":
		return export.WriteCSV(w, r)
	case "text", "":
		text := export.SummaryText(r)
		if isTerminal(w) {
			text = styleSummary(text)
		}
		_, err := io.WriteString(w, text)
		return err
	}
	return fmt.Errorf("unknown format %q: want text, json or csv", format)
}

var (
	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C63FF"))
	milestoneStyle = lipgloss.NewStyle().Bold(true)
)

// styleSummary highlights the labels of the plain summary for a terminal.
func styleSummary(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	inMilestone := false
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "  ") && inMilestone:
			lines[i] = milestoneStyle.Render(line)
		case !strings.HasPrefix(line, " "):
			label, rest, ok := strings.Cut(line, ":")
			if ok {
				lines[i] = labelStyle.Render(label+":") + rest
			}
			inMilestone = label == "Milestone"
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
