package cmd

import (
	"fmt"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the balance curve for the current window",
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	today, err := refDate()
	if err != nil {
		return err
	}
	start, end := rangeWindow(today)

	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}
	txs := snap.visibleTxs()

	series := ledger.BalanceSeries(txs, start, end)
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BALANCE  %s … %s", cli.FormatDate(start), cli.FormatDate(end))))
	fmt.Println(cli.RenderBalanceChart(series, 12))

	low, high := series[0], series[0]
	for _, v := range series {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	fmt.Printf("  low %s   high %s   close %s\n",
		cli.FormatPoints(low), cli.FormatPoints(high), cli.FormatPoints(series[len(series)-1]))
	return nil
}
