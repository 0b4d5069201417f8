package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nagaosooooooora-dev/roman-points/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to rp!")
	fmt.Println()

	// 1. Default window
	fmt.Println("  1. Default history window")
	fmt.Println("     (1) 7 days")
	fmt.Println("     (2) 30 days [default]")
	fmt.Println("     (3) 90 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.DefaultDays = 7
	case "3":
		cfg.General.DefaultDays = 90
	default:
		cfg.General.DefaultDays = 30
	}
	fmt.Println()

	// 2. Monthly earn cap
	fmt.Println("  2. Monthly earn cap")
	fmt.Println("     Earns are halved once a month's total reaches this.")
	fmt.Printf("     Current: %d (enter to keep)\n", cfg.Rules.MonthlyEarnCap)
	fmt.Print("     > ")
	capLine, _ := reader.ReadString('\n')
	if s := strings.TrimSpace(capLine); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
			cfg.Rules.MonthlyEarnCap = n
		} else {
			fmt.Println("     (not a number, keeping current)")
		}
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `rp setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
