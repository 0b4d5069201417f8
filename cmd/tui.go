package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/nagaosooooooora-dev/roman-points/internal/config"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	today, err := refDate()
	if err != nil {
		return err
	}

	app := tui.NewApp(filepath.Join(dataDir(), "ledger.db"), windowDays(), today)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
