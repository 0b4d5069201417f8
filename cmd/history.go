package cmd

import (
	"fmt"
	"sort"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "List recent entries",
	Long: `List entries in the current window, most recently recorded first.
Use -n to change the window and --deleted to include removed entries.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
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

	txs := snap.txs
	if !flagShowDeleted {
		txs = snap.visibleTxs()
	}
	var window []model.Transaction
	startKey, endKey := ledger.DayKey(start), ledger.DayKey(end)
	for _, tx := range txs {
		key := ledger.DayKey(tx.Date)
		if key >= startKey && key <= endKey {
			window = append(window, tx)
		}
	}
	sort.Slice(window, func(i, j int) bool {
		return window[i].CreatedAt.After(window[j].CreatedAt)
	})

	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  %s … %s", cli.FormatDate(start), cli.FormatDate(end))))
	if len(window) == 0 {
		fmt.Println(cli.StyleMuted("  no entries in this window"))
		return nil
	}

	t := cli.Table{Headers: []string{"#", "Date", "Entry", "Amount", ""}}
	for _, tx := range window {
		name := tx.DisplayName()
		if tx.Memo != "" && tx.SourceType != model.SourceManual {
			name += " / " + tx.Memo
		} else if tx.Memo != "" {
			name = tx.Memo
		}
		note := ""
		if tx.Deleted {
			note = "deleted"
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", tx.ID),
			ledger.DayKey(tx.Date),
			name,
			cli.StyleAmount(tx.Amount, cli.FormatSigned(tx.Amount)),
			cli.StyleMuted(note),
		})
	}
	fmt.Println(cli.RenderTable(t))
	return nil
}
