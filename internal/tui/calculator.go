package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/workday/internal/export"
	"github.com/sadopc/workday/internal/workday"
)

const fieldWidth = 12

// rowModel is one editable interval. The id keeps selection and focus
// attached to the row when rows are sorted or removed.
type rowModel struct {
	id       uuid.UUID
	start    textinput.Model
	end      textinput.Model
	selected bool
}

func newRowModel() rowModel {
	return rowModel{
		id:    uuid.New(),
		start: newField("9:00 AM"),
		end:   newField("open"),
	}
}

func newField(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Width = fieldWidth
	return ti
}

func (r rowModel) row() workday.Row {
	return workday.Row{Start: r.start.Value(), End: r.end.Value()}
}

type calculatorModel struct {
	logger *zap.Logger
	width  int
	height int

	target textinput.Model
	rows   []rowModel
	focus  int // 0 is the target field, then start/end of each row

	bar    progress.Model
	report export.Report
}

func newCalculatorModel(logger *zap.Logger, target string, rows int) calculatorModel {
	t := newField(workday.DefaultTarget.String())
	t.SetValue(target)

	c := calculatorModel{
		logger: logger,
		target: t,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	for range rows {
		c.rows = append(c.rows, newRowModel())
	}
	c.setFocus(1)
	return c
}

func (c *calculatorModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.bar.Width = min(60, max(10, w-20))
}

func (c calculatorModel) input() workday.Input {
	in := workday.Input{Target: c.target.Value()}
	for _, r := range c.rows {
		in.Rows = append(in.Rows, r.row())
	}
	return in
}

// recalc runs one pass against a single clock reading.
func (c *calculatorModel) recalc(now time.Time) {
	in := c.input()
	res := workday.Calculate(in, now)
	c.report = export.Report{Rows: in.Rows, Result: res}

	c.logger.Debug("recalculated",
		zap.Int("rows", len(in.Rows)),
		zap.Int("accepted", len(res.Validation.Valid)),
		zap.Int("problems", res.Validation.Problems()),
		zap.Stringer("worked", res.Summary.Worked),
		zap.Int("progress", res.Summary.Progress),
	)
}

func (c calculatorModel) result() workday.Result {
	return c.report.Result
}

// --- Focus ---

func (c calculatorModel) fieldCount() int {
	return 1 + 2*len(c.rows)
}

// focusedRow returns the row index under the cursor, or -1 on the target.
func (c calculatorModel) focusedRow() int {
	if c.focus == 0 {
		return -1
	}
	return (c.focus - 1) / 2
}

func (c *calculatorModel) field(i int) *textinput.Model {
	if i == 0 {
		return &c.target
	}
	r := &c.rows[(i-1)/2]
	if (i-1)%2 == 0 {
		return &r.start
	}
	return &r.end
}

func (c *calculatorModel) setFocus(i int) tea.Cmd {
	n := c.fieldCount()
	i = ((i % n) + n) % n
	for f := range n {
		c.field(f).Blur()
	}
	c.focus = i
	return c.field(i).Focus()
}

func (c *calculatorModel) focusRowID(id uuid.UUID, col int) tea.Cmd {
	for i, r := range c.rows {
		if r.id == id {
			return c.setFocus(1 + 2*i + col)
		}
	}
	return c.setFocus(min(c.focus, c.fieldCount()-1))
}

// --- Row actions ---

func (c *calculatorModel) addRow() tea.Cmd {
	c.rows = append(c.rows, newRowModel())
	return c.setFocus(c.fieldCount() - 2)
}

func (c *calculatorModel) toggleSelect() bool {
	i := c.focusedRow()
	if i < 0 {
		return false
	}
	c.rows[i].selected = !c.rows[i].selected
	return true
}

// removeSelected drops every selected row and reports how many went.
func (c *calculatorModel) removeSelected() (int, tea.Cmd) {
	var kept []rowModel
	for _, r := range c.rows {
		if !r.selected {
			kept = append(kept, r)
		}
	}
	removed := len(c.rows) - len(kept)
	c.rows = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, c.setFocus(min(c.focus, c.fieldCount()-1))
}

// endNow closes every selected open row at now.
func (c *calculatorModel) endNow(now time.Time) int {
	if now.IsZero() {
		return 0
	}
	stamp := workday.TimeOfDayOf(now).String()
	n := 0
	for i := range c.rows {
		r := &c.rows[i]
		if !r.selected || strings.TrimSpace(r.start.Value()) == "" || strings.TrimSpace(r.end.Value()) != "" {
			continue
		}
		r.end.SetValue(stamp)
		n++
	}
	return n
}

// sortByStart orders rows by parsed start time. Blank and unparsable
// starts sink to the bottom in their current order.
func (c *calculatorModel) sortByStart() tea.Cmd {
	var focusID uuid.UUID
	col := 0
	if i := c.focusedRow(); i >= 0 {
		focusID = c.rows[i].id
		col = (c.focus - 1) % 2
	}

	slices.SortStableFunc(c.rows, func(a, b rowModel) int {
		return cmp.Compare(sortKey(a), sortKey(b))
	})

	if focusID == uuid.Nil {
		return nil
	}
	return c.focusRowID(focusID, col)
}

func sortKey(r rowModel) int {
	t, err := workday.ParseTimeOfDay(r.start.Value())
	if err != nil {
		return workday.SecondsPerDay
	}
	return int(t)
}

// --- Update ---

func (c calculatorModel) update(msg tea.Msg) (calculatorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Next):
			return c, c.setFocus(c.focus + 1)
		case key.Matches(msg, keys.Prev):
			return c, c.setFocus(c.focus - 1)
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Enter):
			return c, c.moveRow(1)
		case key.Matches(msg, keys.Up):
			return c, c.moveRow(-1)
		}
	}

	var cmd tea.Cmd
	f := c.field(c.focus)
	*f, cmd = f.Update(msg)
	return c, cmd
}

// moveRow keeps the column and steps to the neighbouring row; the target
// field sits above the first row.
func (c *calculatorModel) moveRow(delta int) tea.Cmd {
	if c.focus == 0 {
		if delta > 0 && len(c.rows) > 0 {
			return c.setFocus(1)
		}
		return nil
	}
	next := c.focus + 2*delta
	if next < 1 {
		return c.setFocus(0)
	}
	if next >= c.fieldCount() {
		return nil
	}
	return c.setFocus(next)
}

// --- View ---

func (c calculatorModel) view(clock clockModel) string {
	if c.width < 20 {
		return "Terminal too small"
	}
	w := c.width - 4
	res := c.result()

	top := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Target "),
		c.fieldView(0, c.target),
		mutedStyle.Render(fmt.Sprintf("  resolved %s", res.Target)),
	)

	rows := []string{
		top,
		"",
		clock.banner(),
		"",
		c.renderRows(res),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		append(rows, "", c.renderTotals(res))...,
	))
}

func (c calculatorModel) fieldView(i int, ti textinput.Model) string {
	box := lipgloss.NewStyle().Width(fieldWidth + 2).Padding(0, 1)
	if i == c.focus {
		box = box.Foreground(colorPrimary).Bold(true)
	}
	return box.Render(ti.View())
}

func (c calculatorModel) renderRows(res workday.Result) string {
	header := mutedStyle.Render(fmt.Sprintf("    %-*s %-*s %-4s %s",
		fieldWidth+2, "Start", fieldWidth+2, "End", "Sel", "Validation / Notes"))
	lines := []string{header}

	for i, r := range c.rows {
		cursor := "  "
		if c.focusedRow() == i {
			cursor = selectedItemStyle.Render("> ")
		}
		sel := "[ ]"
		if r.selected {
			sel = highlightStyle.Render("[x]")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center,
			cursor, "  ",
			c.fieldView(1+2*i, r.start), " ",
			c.fieldView(2+2*i, r.end), " ",
			sel, "  ",
			noteStyle(res, i).Render(export.RowText(res, i)),
		))
	}
	if len(c.rows) == 0 {
		lines = append(lines, mutedStyle.Render("  No rows. Press ctrl+n to add one."))
	}
	return strings.Join(lines, "\n")
}

func noteStyle(res workday.Result, row int) lipgloss.Style {
	n, ok := res.Validation.Note(row)
	switch {
	case !ok:
		if iv, ok := res.Interval(row); ok && iv.Open {
			return successStyle
		}
		return mutedStyle
	case n.Kind.Blocking():
		return errorStyle
	case n.Blank():
		return mutedStyle
	}
	return warningStyle
}

func (c calculatorModel) renderTotals(res workday.Result) string {
	s := res.Summary
	totals := titleStyle.Render(fmt.Sprintf("Worked: %s    Remaining: %s    Overtime: %s",
		s.Worked, s.Remaining, s.Overtime))

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		c.bar.ViewAs(float64(s.Progress)/100), "  ",
		highlightStyle.Render(fmt.Sprintf("%d%%", s.Progress)),
	)

	line1, line2 := export.MilestoneLines(res)
	milestone := []string{milestoneStyle.Render(line1)}
	if line2 != "" {
		if rel := export.Relative(res); rel != "" {
			line2 += mutedStyle.Render("  (" + rel + ")")
		}
		milestone = append(milestone, milestoneStyle.Render(line2))
	}

	status := export.StatusLine(res)
	statusStyle := mutedStyle
	if res.Validation.Problems() > 0 || res.TargetNote != nil {
		statusStyle = warningStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		totals, "", bar, "",
		strings.Join(milestone, "\n"), "",
		statusStyle.Render(status),
	)
}
