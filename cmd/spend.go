package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"

	"github.com/spf13/cobra"
)

var spendCmd = &cobra.Command{
	Use:   "spend <amount> [memo...]",
	Short: "Record a payment",
	Long: `Record a payment. The amount is entered as a positive number and
stored as a negative entry dated today. Fractional amounts are rounded
down.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpend,
}

func init() {
	rootCmd.AddCommand(spendCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	raw, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("amount %q is not a number", args[0])
	}
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return fmt.Errorf("payment amount must be a positive number, got %q", args[0])
	}
	amount := -int64(math.Floor(raw))
	if amount == 0 {
		return fmt.Errorf("payment amount %q rounds down to zero", args[0])
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

	id, err := st.AddTransaction(model.Transaction{
		CreatedAt:  time.Now(),
		Date:       today,
		Amount:     amount,
		Kind:       model.KindSpend,
		SourceType: model.SourcePayment,
		Memo:       memo,
	})
	if err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  #%d  Payment  %s\n", id, cli.FormatSigned(amount))
	}

	return reprintSummary(st)
}
