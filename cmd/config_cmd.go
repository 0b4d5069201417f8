package cmd

import (
	"fmt"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:    %s\n", dataDir())
	fmt.Printf("    Default days:      %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Earn lookback:     %d days\n", cfg.General.EarnLookbackDays)
	fmt.Println()

	fmt.Println("  [Rules]")
	fmt.Printf("    Monthly earn cap:   %s (earns halve past this)\n", cli.FormatPoints(cfg.Rules.MonthlyEarnCap))
	fmt.Printf("    Month-end deduction: %s when balance exceeds %s\n",
		cli.FormatPoints(cfg.Rules.MonthEndDeduction), cli.FormatPoints(cfg.Rules.DeductionMinBalance))
	fmt.Printf("    Forecast horizon:   %s\n", cli.FormatDays(cfg.Rules.ForecastHorizonDays))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `rp setup` to reconfigure.")
	return nil
}
