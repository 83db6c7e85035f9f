// Package status provides the bottom status bar for the vscroll demo.
// It renders scroll position plus the estimator's window diagnostics.
package status

import (
	"fmt"
	"strings"

	"github.com/vscroll/vscroll/estimate"
	"github.com/vscroll/vscroll/style"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	width      int
	itemCount  int
	offset     int
	percent    float64
	cached     int
	est        estimate.State
	helpLine   string
	showDetail bool
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetWidth sets the render width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetScroll updates scroll position info.
func (m *Model) SetScroll(offset int, percent float64) {
	m.offset = offset
	m.percent = percent
}

// SetEstimate updates the estimator diagnostics.
func (m *Model) SetEstimate(itemCount, cached int, est estimate.State) {
	m.itemCount = itemCount
	m.cached = cached
	m.est = est
}

// SetHelp stores the pre-rendered key-help line.
func (m *Model) SetHelp(line string) {
	m.helpLine = line
}

// ToggleDetail flips the estimator detail line on and off.
func (m *Model) ToggleDetail() {
	m.showDetail = !m.showDetail
}

// View renders the status area: a position line, optionally an estimator
// detail line, and the key help.
func (m Model) View() string {
	var parts []string
	parts = append(parts, m.positionLine())
	if m.showDetail {
		parts = append(parts, m.detailLine())
	}
	if m.helpLine != "" {
		parts = append(parts, style.StatusBar.Render(m.helpLine))
	}
	return strings.Join(parts, "\n")
}

// positionLine renders: " 10000 items · line 250025 · 50%"
func (m Model) positionLine() string {
	items := style.StatusValue.Render(fmt.Sprintf("%d", m.itemCount)) +
		style.Faint.Render(" items")
	pos := style.StatusKey.Render("line ") +
		style.StatusValue.Render(fmt.Sprintf("%d", m.offset))
	pct := style.StatusValue.Render(fmt.Sprintf("%.0f%%", m.percent))
	return style.StatusBar.Render(items + sep() + pos + sep() + pct)
}

// detailLine renders the estimator internals: window bounds, placeholder
// heights, the running average, and how many rows have been measured.
func (m Model) detailLine() string {
	window := fmt.Sprintf("win %d+%d/%d",
		m.est.FirstMiddleItem, m.est.MiddleItemCount, m.est.LastItemCount)
	avg := fmt.Sprintf("avg %.1f", m.est.AverageRowHeight)
	total := fmt.Sprintf("est %.0f", m.est.TargetHeight)
	measured := fmt.Sprintf("measured %d/%d", m.cached, m.itemCount)

	fields := []string{window, avg, total, measured}
	for i, f := range fields {
		fields[i] = style.Faint.Render(f)
	}
	return style.StatusBar.Render(strings.Join(fields, sep()))
}

func sep() string {
	return style.Faint.Render(" · ")
}

// Height reports how many terminal lines the status bar occupies.
func (m Model) Height() int {
	h := 1
	if m.showDetail {
		h++
	}
	if m.helpLine != "" {
		h++
	}
	return h
}
