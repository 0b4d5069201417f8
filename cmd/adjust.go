package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"

	"github.com/spf13/cobra"
)

var adjustDate string

var adjustCmd = &cobra.Command{
	Use:   "adjust <amount> [memo...]",
	Short: "Record a manual adjustment",
	Long: `Record a manual entry with an explicit signed amount. Positive
amounts count as earns (and toward the monthly total), negative amounts
as spends. Use --on to backdate the entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().StringVar(&adjustDate, "on", "", "entry date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not a whole number", args[0])
	}
	if amount == 0 {
		return fmt.Errorf("adjustment amount must be non-zero")
	}
	memo := strings.Join(args[1:], " ")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	today, err := refDate()
	if err != nil {
		return err
	}
	date := today
	if adjustDate != "" {
		date, err = ledger.ParseDay(adjustDate)
		if err != nil {
			return fmt.Errorf("--on: %w", err)
		}
	}

	id, err := st.AddTransaction(model.Transaction{
		CreatedAt:  time.Now(),
		Date:       date,
		Amount:     amount,
		Kind:       model.KindForAmount(amount),
		SourceType: model.SourceManual,
		Memo:       memo,
	})
	if err != nil {
		return fmt.Errorf("recording adjustment: %w", err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  #%d  Adjustment (%s)  %s\n", id, ledger.DayKey(date), cli.FormatSigned(amount))
	}

	return reprintSummary(st)
}
