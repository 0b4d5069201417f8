package cmd

import (
	"fmt"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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

	printSummary(snap, today)
	return nil
}

// printSummary renders the balance overview. Mutating commands call it
// after their write with a fresh snapshot so the output always reflects
// storage.
func printSummary(snap *snapshot, today time.Time) {
	cfg := getConfig()
	balance := ledger.SumAmounts(snap.visibleTxs())
	monthEarned := ledger.EarnedInMonth(snap.txs, today)
	avg := ledger.AverageDailyEarn(snap.txs, cfg.General.EarnLookbackDays, today)

	fmt.Println()
	fmt.Println(cli.RenderTitle("POINT BALANCE"))
	fmt.Println()
	fmt.Printf("  Balance:      %s\n", cli.FormatPoints(balance))
	fmt.Printf("  This month:   %s earned", cli.FormatPoints(monthEarned))
	if monthlyCap := cfg.Rules.MonthlyEarnCap; monthlyCap > 0 && monthEarned >= monthlyCap {
		fmt.Print("  (earn rate halved: monthly cap reached)")
	}
	fmt.Println()
	fmt.Printf("  Daily avg:    %.1f RP over the last %s\n",
		avg, cli.FormatDays(cfg.General.EarnLookbackDays))

	// Two-week trend
	start := today.AddDate(0, 0, -13)
	series := ledger.BalanceSeries(snap.txs, start, today)
	vals := make([]float64, len(series))
	for i, v := range series {
		vals[i] = float64(v)
	}
	fmt.Printf("  Trend (14d):  %s\n", cli.RenderSparkline(vals))
	fmt.Println()
}
