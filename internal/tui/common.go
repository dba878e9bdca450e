package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/workday/internal/workday"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalculator viewState = iota
	viewChart
	viewSettings
)

var viewNames = []string{"Calculator", "Chart", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type copiedMsg struct{}

type settingsSavedMsg struct {
	target     string
	autoRecalc bool
}

// --- Helpers ---

func hours(d workday.Duration) float64 {
	return float64(d) / workday.SecondsPerHour
}

func formatHours(d workday.Duration) string {
	return fmt.Sprintf("%.1fh", hours(d))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
