package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/store"

	"github.com/spf13/cobra"
)

var (
	editSetDate string
	editSetMemo string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an entry's date or memo",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an entry (recoverable)",
	Long: `Mark an entry removed. The row stays in the database with a removal
timestamp and is excluded from balances; use "rp restore" to bring it
back.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Bring back a removed entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	editCmd.Flags().StringVar(&editSetDate, "on", "", "move the entry to this date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editSetMemo, "memo", "", "replace the entry memo")
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(restoreCmd)
}

func parseTxID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not an entry id", arg)
	}
	return id, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTxID(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("on") && !cmd.Flags().Changed("memo") {
		return errors.New("nothing to change: pass --on and/or --memo")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Transaction(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no entry #%d", id)
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("on") {
		date, err := ledger.ParseDay(editSetDate)
		if err != nil {
			return fmt.Errorf("--on: %w", err)
		}
		tx.Date = date
	}
	if cmd.Flags().Changed("memo") {
		tx.Memo = editSetMemo
	}
	if err := st.PutTransaction(tx); err != nil {
		return fmt.Errorf("saving entry #%d: %w", id, err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  #%d  %s  %s  %s\n",
			tx.ID, ledger.DayKey(tx.Date), tx.DisplayName(), cli.FormatSigned(tx.Amount))
	}
	return reprintSummary(st)
}

func runRemove(_ *cobra.Command, args []string) error {
	id, err := parseTxID(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Transaction(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no entry #%d", id)
	}
	if err != nil {
		return err
	}
	if tx.Deleted {
		return fmt.Errorf("entry #%d is already removed", id)
	}

	tx.Deleted = true
	tx.DeletedAt = time.Now()
	if err := st.PutTransaction(tx); err != nil {
		return fmt.Errorf("removing entry #%d: %w", id, err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  removed #%d  %s  %s\n", tx.ID, tx.DisplayName(), cli.FormatSigned(tx.Amount))
	}
	return reprintSummary(st)
}

func runRestore(_ *cobra.Command, args []string) error {
	id, err := parseTxID(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Transaction(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no entry #%d", id)
	}
	if err != nil {
		return err
	}
	if !tx.Deleted {
		return fmt.Errorf("entry #%d is not removed", id)
	}

	tx.Deleted = false
	tx.DeletedAt = time.Time{}
	if err := st.PutTransaction(tx); err != nil {
		return fmt.Errorf("restoring entry #%d: %w", id, err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  restored #%d  %s  %s\n", tx.ID, tx.DisplayName(), cli.FormatSigned(tx.Amount))
	}
	return reprintSummary(st)
}

// reprintSummary reloads and prints the balance card after a write.
func reprintSummary(st *store.Store) error {
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
