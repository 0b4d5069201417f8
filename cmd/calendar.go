package cmd

import (
	"fmt"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"

	"github.com/spf13/cobra"
)

var calCmd = &cobra.Command{
	Use:     "cal [YYYY-MM]",
	Aliases: []string{"calendar"},
	Short:   "Show a month calendar with daily net amounts",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCalendar,
}

func init() {
	rootCmd.AddCommand(calCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	today, err := refDate()
	if err != nil {
		return err
	}
	month := today
	if len(args) == 1 {
		month, err = time.ParseInLocation("2006-01", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("month %q: want YYYY-MM", args[0])
		}
	}

	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	net := ledger.DailyNet(snap.visibleTxs(), first, last)

	fmt.Println(cli.RenderCalendar(first, net, today))
	return nil
}
