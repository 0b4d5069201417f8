package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/backup"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a full backup as JSON",
	Long: `Write every record, removed entries included, as a JSON backup.
With no file argument the backup goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data from a JSON backup",
	Long: `Replace the entire database with the contents of a backup file.
Existing data is discarded first; pass --yes to skip the confirmation.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "yes", "y", false, "replace existing data without asking")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating backup file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := backup.Export(st, out, time.Now()); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	if !flagQuiet && len(args) == 1 {
		fmt.Fprintf(os.Stderr, "  wrote backup to %s\n", args[0])
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if !importForce {
		fmt.Fprintf(os.Stderr, "This replaces ALL existing data with %s. Continue? [y/N] ", args[0])
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening backup file: %w", err)
	}
	defer f.Close()

	counts, err := backup.Import(st, f, time.Now())
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  restored %d entries, %d actions, %d options, %d goals\n",
			counts.Transactions, counts.Actions, counts.ActionOptions, counts.Wishlist)
	}
	return reprintSummary(st)
}
