package tui

import (
	"time"

	"github.com/sadopc/workday/internal/workday"
)

// clockModel owns the wall clock. It is read once per tick and once per
// recalculation; a zero reading means the clock is unavailable.
type clockModel struct {
	now     func() time.Time
	current time.Time
}

func newClockModel(now func() time.Time) clockModel {
	if now == nil {
		now = time.Now
	}
	return clockModel{now: now}
}

// read takes a new snapshot and keeps it for the banner.
func (c *clockModel) read() time.Time {
	c.current = c.now()
	return c.current
}

func (c clockModel) available() bool {
	return !c.current.IsZero()
}

func (c clockModel) timeOfDay() string {
	if !c.available() {
		return "--:--:--"
	}
	return workday.TimeOfDayOf(c.current).String()
}

func (c clockModel) banner() string {
	if !c.available() {
		return clockUnavailableStyle.Render("CURRENT TIME: " + c.timeOfDay())
	}
	return clockStyle.Render("CURRENT TIME: " + c.timeOfDay())
}
