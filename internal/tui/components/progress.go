package components

import (
	"fmt"

	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForGoalPct colors a goal bar by how close it is: green when
// done, accent on the way, muted when far off.
func ColorForGoalPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1:
		return string(t.Green)
	case pct >= 0.5:
		return string(t.Accent)
	default:
		return string(t.Cyan)
	}
}

// GoalBar renders a labeled goal progress bar with percentage and an
// ETA column.
func GoalBar(label string, pct float64, eta string, labelW, barWidth int) string {
	t := theme.Active

	clamped := pct
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForGoalPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForGoalPct(pct))).Bold(true)
	etaStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(clamped) +
		" " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		"  " +
		etaStyle.Render(eta)
}
