package tui

import (
	"fmt"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/config"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settState struct {
	saveErr error
}

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key != "t" {
		return a, nil, false
	}

	// Cycle to the next theme and persist the choice.
	cfg := loadConfigOrDefault()
	next := 0
	for i, th := range theme.All {
		if th.Name == theme.Active.Name {
			next = (i + 1) % len(theme.All)
			break
		}
	}
	theme.SetActive(theme.All[next].Name)
	cfg.Appearance.Theme = theme.All[next].Name
	a.sett.saveErr = config.Save(cfg)
	return a, nil, true
}

func (a App) renderSettingsTab(_ int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("   %-22s", label)) + valueStyle.Render(value) + "\n"
	}

	out := "\n " + sectionStyle.Render("General") + "\n"
	out += row("Config file", config.Path())
	out += row("Database", a.dbPath)
	out += row("Default window", cli.FormatDays(cfg.General.DefaultDays))
	out += row("Earn lookback", cli.FormatDays(cfg.General.EarnLookbackDays))

	out += "\n " + sectionStyle.Render("Rules") + "\n"
	out += row("Monthly earn cap", cli.FormatPoints(cfg.Rules.MonthlyEarnCap))
	out += row("Month-end deduction", cli.FormatPoints(cfg.Rules.MonthEndDeduction))
	out += row("Deduction floor", cli.FormatPoints(cfg.Rules.DeductionMinBalance))
	out += row("Forecast horizon", cli.FormatDays(cfg.Rules.ForecastHorizonDays))

	out += "\n " + sectionStyle.Render("Appearance") + "\n"
	out += row("Theme", theme.Active.Name)

	if a.sett.saveErr != nil {
		out += "\n " + warnStyle.Render(fmt.Sprintf("could not save config: %v", a.sett.saveErr)) + "\n"
	}

	out += "\n" + dimStyle.Render("   t cycle theme · edit the file for everything else")
	return out
}
