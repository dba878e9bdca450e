package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/workday/internal/store"
	"github.com/sadopc/workday/internal/workday"
)

// defaults are the values shown before anything was saved.
type defaults struct {
	target     string
	rows       int
	autoRecalc bool
}

type settingsModel struct {
	store    *store.Store
	logger   *zap.Logger
	defaults defaults
	width    int
	height   int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	target     *string
	rows       *string
	autoRecalc *bool
}

func newSettingsModel(s *store.Store, logger *zap.Logger, d defaults) settingsModel {
	t, r, a := "", "", false
	return settingsModel{
		store:      s,
		logger:     logger,
		defaults:   d,
		target:     &t,
		rows:       &r,
		autoRecalc: &a,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			s.logger.Warn("load settings", zap.Error(err))
		}
		return settingsDataMsg{settings: settings}
	}
}

// current resolves the effective preferences: stored values over the
// configured defaults.
func (s settingsModel) current() defaults {
	return defaults{
		target:     s.store.GetSettingOr(store.KeyTarget, s.defaults.target),
		rows:       s.store.GetIntSetting(store.KeyDefaultRows, s.defaults.rows),
		autoRecalc: s.store.GetBoolSetting(store.KeyAutoRecalc, s.defaults.autoRecalc),
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.current()
	*s.target = cur.target
	*s.rows = strconv.Itoa(cur.rows)
	*s.autoRecalc = cur.autoRecalc

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily target (H:MM:SS)").Value(s.target).Validate(validateTarget),
			huh.NewInput().Title("Rows at startup").Value(s.rows).Validate(validateRows),
			huh.NewConfirm().Title("Recalculate every second").Value(s.autoRecalc),
		).Title("Calculator"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			s.logger.Warn("save settings", zap.Error(err))
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
			}
		}
		saved := settingsSavedMsg{target: *s.target, autoRecalc: *s.autoRecalc}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return saved })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := []store.Setting{
		{Key: store.KeyTarget, Value: *s.target},
		{Key: store.KeyDefaultRows, Value: *s.rows},
		{Key: store.KeyAutoRecalc, Value: strconv.FormatBool(*s.autoRecalc)},
	}
	for _, v := range values {
		if err := s.store.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	s.logger.Info("settings saved",
		zap.String("target", *s.target),
		zap.String("rows", *s.rows),
		zap.Bool("auto_recalc", *s.autoRecalc),
	)
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings. Rows at startup apply on the next launch.")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if len(s.settings) == 0 {
		rows = append(rows, mutedStyle.Render("  Using defaults"))
	}
	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.KeyAutoRecalc:
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return "on"
			}
			return "off"
		}
	case store.KeyDefaultRows:
		if n, err := strconv.Atoi(v); err == nil {
			return plural(n, "row")
		}
	case store.KeyTarget:
		if d, err := workday.ParseDuration(v); err == nil {
			return d.String()
		}
	}
	return v
}

func validateTarget(s string) error {
	_, err := workday.ParseDuration(s)
	return err
}

func validateRows(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 50 {
		return fmt.Errorf("enter a number from 1 to 50")
	}
	return nil
}
