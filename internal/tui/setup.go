package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nagaosooooooora-dev/roman-points/internal/config"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects first-run wizard answers.
type setupValues struct {
	days  string
	cap   string
	theme string
}

func newSetupForm(vals *setupValues) *huh.Form {
	vals.days = "30"
	vals.cap = strconv.FormatInt(config.DefaultConfig().Rules.MonthlyEarnCap, 10)
	vals.theme = theme.FlexokiDark.Name

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to rp!").
				Description("A few choices and you're tracking points."),

			huh.NewSelect[string]().
				Title("Default history window").
				Options(
					huh.NewOption("7 days", "7"),
					huh.NewOption("30 days", "30"),
					huh.NewOption("90 days", "90"),
				).
				Value(&vals.days),

			huh.NewInput().
				Title("Monthly earn cap").
				Description("Earns are halved once a month's total reaches this.").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil || n < 0 {
						return fmt.Errorf("want a non-negative whole number")
					}
					return nil
				}).
				Value(&vals.cap),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	)
}

func (a *App) saveSetupConfig() {
	cfg := loadConfigOrDefault()

	if n, err := strconv.Atoi(a.setupVals.days); err == nil && n > 0 {
		cfg.General.DefaultDays = n
		a.days = n
	}
	if s := strings.TrimSpace(a.setupVals.cap); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
			cfg.Rules.MonthlyEarnCap = n
		}
	}
	if a.setupVals.theme != "" {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}

	a.sett.saveErr = config.Save(cfg)
}
