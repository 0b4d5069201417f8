package tui

import (
	"fmt"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/components"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type wishState struct {
	cursor int
}

func (a App) updateWishlistKeys(key string) (tea.Model, tea.Cmd, bool) {
	goals := a.liveGoals()
	switch key {
	case "j", "down":
		if a.wish.cursor < len(goals)-1 {
			a.wish.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.wish.cursor > 0 {
			a.wish.cursor--
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) renderWishlistTab(cw int) string {
	t := theme.Active
	goals := a.liveGoals()

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)

	if len(goals) == 0 {
		return dimStyle.Render("\n  no goals yet (run `rp wish add`)")
	}

	cfg := loadConfigOrDefault()
	params := a.forecastParams(cfg)

	labelW := 20
	barW := cw - labelW - 40
	if barW < 10 {
		barW = 10
	}

	out := "\n"
	for i, g := range goals {
		p := params
		p.Target = g.Target
		res := forecast.Simulate(p)

		eta := "out of reach"
		switch {
		case res.Reached && res.Days == 0:
			eta = "reached"
		case res.Reached:
			eta = fmt.Sprintf("%s · %s", cli.FormatDays(res.Days), cli.FormatDate(res.ReachDate))
		}

		pct := 0.0
		if g.Target > 0 {
			pct = float64(a.balance) / float64(g.Target)
		}

		line := " " + components.GoalBar(truncStr(g.Name, labelW), pct, eta, labelW, barW)
		if i == a.wish.cursor {
			line = selStyle.Render(line)
		}
		out += line + "\n"
		out += dimStyle.Render(fmt.Sprintf("   %s of %s", cli.FormatPoints(a.balance), cli.FormatPoints(g.Target))) + "\n"
	}

	if len(a.series) > 1 {
		vals := make([]float64, len(a.series))
		for i, v := range a.series {
			vals[i] = float64(v)
		}
		out += "\n" + dimStyle.Render(fmt.Sprintf(" trend (%dd)  ", a.days)) +
			components.Sparkline(vals, t.Accent) + "\n"
	}

	out += dimStyle.Render(" j/k move · manage with `rp wish`")
	return out
}
