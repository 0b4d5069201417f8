package cmd

import (
	"fmt"
	"strconv"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"

	"github.com/spf13/cobra"
)

var forecastRate float64

var forecastCmd = &cobra.Command{
	Use:   "forecast <target>",
	Short: "Estimate how long until the balance reaches a target",
	Long: `Simulate the balance forward one day at a time, using the recent
average daily earn, until it reaches the target. The projection models
the monthly earn-rate halving and the month-end deduction. Use --rate
to override the average.`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().Float64Var(&forecastRate, "rate", 0, "assumed daily earn (default: recent average)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	target, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("target %q: want a whole number", args[0])
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	today, err := refDate()
	if err != nil {
		return err
	}
	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}

	cfg := getConfig()
	txs := snap.visibleTxs()
	balance := ledger.SumAmounts(txs)
	rate := ledger.AverageDailyEarn(txs, cfg.General.EarnLookbackDays, today)
	if cmd.Flags().Changed("rate") {
		rate = forecastRate
	}

	res := forecast.Simulate(forecast.Params{
		StartBalance:    balance,
		Target:          target,
		AvgDailyEarn:    rate,
		StartDate:       today,
		EarnedThisMonth: ledger.EarnedInMonth(txs, today),
		MaxDays:         cfg.Rules.ForecastHorizonDays,
		Rules:           cfg.ForecastRules(),
	})

	fmt.Println(cli.RenderTitle("FORECAST"))
	fmt.Printf("  Balance:     %s\n", cli.FormatPoints(balance))
	fmt.Printf("  Target:      %s\n", cli.FormatPoints(target))
	fmt.Printf("  Daily earn:  %.1f\n", rate)
	switch {
	case res.Reached && res.Days == 0:
		fmt.Println("  Already there.")
	case res.Reached:
		fmt.Printf("  Reached in:  %s, on %s (%s)\n",
			cli.FormatDays(res.Days), cli.FormatDate(res.ReachDate),
			cli.FormatDayOfWeek(int(res.ReachDate.Weekday())))
		fmt.Printf("  Balance then: %s\n", cli.FormatPoints(res.FinalBalance))
	default:
		fmt.Printf("  %s\n", cli.StyleMuted(fmt.Sprintf(
			"not reached within %s at this rate", cli.FormatDays(cfg.Rules.ForecastHorizonDays))))
	}
	return nil
}
