package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/workday/internal/export"
	"github.com/sadopc/workday/internal/workday"
)

// chartModel draws the accepted intervals of the last pass as bars, plus
// a stacked total against the target.
type chartModel struct {
	width  int
	height int

	report export.Report
	chart  barchart.Model
}

func newChartModel() chartModel {
	return chartModel{
		chart: barchart.New(60, 12),
	}
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.buildChart()
}

func (c *chartModel) setReport(r export.Report) {
	c.report = r
	c.buildChart()
}

func (c *chartModel) buildChart() {
	chartWidth := max(20, c.width-8)
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)
	c.chart.PushAll(chartBars(c.report.Result))
	c.chart.Draw()
}

// chartBars returns one bar per accepted interval in start order and a
// final Total bar split into worked, remaining and overtime.
func chartBars(res workday.Result) []barchart.BarData {
	var bars []barchart.BarData
	for _, iv := range res.Validation.Valid {
		style := lipgloss.NewStyle().Foreground(colorSecondary)
		if iv.Open {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("#%d %s", iv.Row+1, iv.Start),
			Values: []barchart.BarValue{{
				Name:  fmt.Sprintf("Row %d", iv.Row+1),
				Value: hours(iv.Duration()),
				Style: style,
			}},
		})
	}

	s := res.Summary
	bars = append(bars, barchart.BarData{
		Label: "Total",
		Values: []barchart.BarValue{
			{Name: "Worked", Value: hours(s.Worked - s.Overtime), Style: lipgloss.NewStyle().Foreground(colorPrimary)},
			{Name: "Remaining", Value: hours(s.Remaining), Style: lipgloss.NewStyle().Foreground(colorSubtle)},
			{Name: "Overtime", Value: hours(s.Overtime), Style: lipgloss.NewStyle().Foreground(colorWarning)},
		},
	})
	return bars
}

func (c chartModel) view() string {
	w := c.width - 4
	res := c.report.Result

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Chart"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s worked of %s", formatHours(res.Summary.Worked), formatHours(res.Target))),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", c.chart.View(), "", renderLegend(), "", c.renderTable(w),
		),
	)
}

func (c chartModel) renderTable(w int) string {
	res := c.report.Result
	if len(res.Validation.Valid) == 0 {
		return mutedStyle.Render("  No accepted intervals yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-5s %-10s %-10s %10s", "Row", "Start", "End", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))
	for _, iv := range res.Validation.Valid {
		end := iv.End.String()
		if iv.Open {
			end += "*"
		}
		rows = append(rows, fmt.Sprintf("  %-5d %-10s %-10s %10s", iv.Row+1, iv.Start, end, iv.Duration()))
	}
	if res.Validation.OpenRow >= 0 {
		rows = append(rows, mutedStyle.Render("  * open interval, ends at the current time"))
	}
	return strings.Join(rows, "\n")
}

func renderLegend() string {
	items := []struct {
		name  string
		color lipgloss.Color
	}{
		{"interval", colorSecondary},
		{"open", colorSuccess},
		{"worked", colorPrimary},
		{"remaining", colorSubtle},
		{"overtime", colorWarning},
	}
	var out []string
	for _, it := range items {
		dot := lipgloss.NewStyle().Foreground(it.color).Render("●")
		out = append(out, fmt.Sprintf("%s %s", dot, it.name))
	}
	return "  " + strings.Join(out, "  ")
}
