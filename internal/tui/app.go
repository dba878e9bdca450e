package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/workday/internal/config"
	"github.com/sadopc/workday/internal/export"
	"github.com/sadopc/workday/internal/store"
)

type exportFormat int

const (
	exportText exportFormat = iota
	exportCSV
	exportJSON
)

var exportFormats = []string{"Text", "CSV", "JSON"}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	logger *zap.Logger
	width  int
	height int

	clock      clockModel
	autoRecalc bool
	copyText   func(string) error
	exportDir  string

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	calc     calculatorModel
	chart    chartModel
	settings settingsModel

	help   help.Model
	status string
}

// Option customises an App.
type Option func(*App)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClock replaces the wall clock. A clock returning the zero time is
// treated as unavailable.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.clock = newClockModel(now) }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) { a.copyText = write }
}

// WithExportDir sets where export files are written. The default is the
// user's home directory.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

func NewApp(s *store.Store, cfg config.Config, opts ...Option) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:    s,
		logger:   zap.NewNop(),
		clock:    newClockModel(time.Now),
		copyText: clipboard.WriteAll,
		help:     h,
		status:   "Ready.",
	}
	for _, opt := range opts {
		opt(&a)
	}

	a.settings = newSettingsModel(s, a.logger, defaults{
		target:     cfg.Target,
		rows:       cfg.Rows,
		autoRecalc: true,
	})
	cur := a.settings.current()
	a.autoRecalc = cur.autoRecalc
	a.calc = newCalculatorModel(a.logger, cur.target, cur.rows)
	a.chart = newChartModel()

	a.recalc()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.settings.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// recalc reads the clock once and refreshes every view that shows the
// result.
func (a *App) recalc() {
	a.calc.recalc(a.clock.read())
	a.chart.setReport(a.calc.report)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.calc.setSize(a.width, contentHeight)
		a.chart.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// The settings form captures every key, esc included.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewCalculator
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewChart
			a.recalc()
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Recalc):
			a.recalc()
			a.status = "Recalculated."
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Copy):
			a.recalc()
			return a, a.copySummary()
		}

		if a.activeView == viewCalculator {
			if handled, cmd := a.rowAction(msg); handled {
				return a, cmd
			}
		}

	case tickMsg:
		if a.autoRecalc {
			a.recalc()
		} else {
			a.clock.read()
		}
		return a, tickCmd()

	case statusMsg:
		a.status = msg.text
		return a, nil

	case copiedMsg:
		a.status = "Summary copied to clipboard."
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case settingsSavedMsg:
		a.autoRecalc = msg.autoRecalc
		a.calc.target.SetValue(msg.target)
		a.recalc()
		a.status = "Settings saved."
		return a, nil
	}

	return a.updateActiveView(msg)
}

// rowAction runs the calculator shortcuts. Every action recalculates.
func (a *App) rowAction(msg tea.KeyMsg) (bool, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.AddRow):
		cmd = a.calc.addRow()
		a.status = "Row added."
	case key.Matches(msg, keys.Remove):
		var n int
		n, cmd = a.calc.removeSelected()
		if n == 0 {
			a.status = "No rows are selected."
		} else {
			a.status = fmt.Sprintf("Removed %s.", plural(n, "row"))
		}
	case key.Matches(msg, keys.Select):
		if !a.calc.toggleSelect() {
			a.status = "Move to a row to select it."
		}
	case key.Matches(msg, keys.EndNow):
		n := a.calc.endNow(a.clock.read())
		if n == 0 {
			a.status = "No selected open rows to end."
		} else {
			a.status = fmt.Sprintf("Ended %s at %s.", plural(n, "row"), a.clock.timeOfDay())
		}
	case key.Matches(msg, keys.Sort):
		cmd = a.calc.sortByStart()
		a.status = "Sorted by start."
	default:
		return false, nil
	}
	a.recalc()
	return true, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCalculator:
		a.calc, cmd = a.calc.update(msg)
		if _, ok := msg.(tea.KeyMsg); ok && a.autoRecalc {
			a.recalc()
		}
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.settings.formActive
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCalculator:
		content = a.calc.view(a.clock)
	case viewChart:
		content = a.chart.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("workday")
	date := mutedStyle.Render("  " + a.calc.report.Date())
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(date)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, date, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Worked-time indicator
	s := a.calc.result().Summary
	worked := successStyle.Render(fmt.Sprintf(" ● %s %d%%", s.Worked, s.Progress))
	if a.calc.result().Validation.Problems() > 0 {
		worked = warningStyle.Render(fmt.Sprintf(" ▲ %s %d%%", s.Worked, s.Progress))
	}

	left := footerStyle.Render(helpView)
	right := worked + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		a.recalc()
		return a, a.doExport(exportFormat(a.exportCursor))
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportPath(ext string) (string, error) {
	dir := a.exportDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("find home directory: %w", err)
		}
		dir = home
	}
	return filepath.Join(dir, fmt.Sprintf("workday-%s.%s", a.calc.report.Date(), ext)), nil
}

// doExport writes the current report. It captures the report by value so
// later edits do not leak into the file.
func (a App) doExport(format exportFormat) tea.Cmd {
	report := a.calc.report
	logger := a.logger
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		switch format {
		case exportCSV:
			if path, err = a.exportPath("csv"); err == nil {
				err = export.ToCSV(report, path)
			}
		case exportJSON:
			if path, err = a.exportPath("json"); err == nil {
				err = export.ToJSON(report, path)
			}
		default:
			if path, err = a.exportPath("txt"); err == nil {
				err = os.WriteFile(path, []byte(export.SummaryText(report)), 0o644)
			}
		}
		if err != nil {
			logger.Warn("export failed", zap.String("format", exportFormats[format]), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("%s export error: %v", exportFormats[format], err), isError: true}
		}
		logger.Info("exported", zap.String("format", exportFormats[format]), zap.String("path", path))
		return exportDoneMsg{path: path}
	}
}

func (a App) copySummary() tea.Cmd {
	text := export.SummaryText(a.calc.report)
	write := a.copyText
	logger := a.logger
	return func() tea.Msg {
		if err := write(text); err != nil {
			logger.Warn("clipboard copy failed", zap.Error(err))
			return statusMsg{text: fmt.Sprintf("Clipboard error: %v", err), isError: true}
		}
		logger.Info("summary copied", zap.Int("bytes", len(text)))
		return copiedMsg{}
	}
}
