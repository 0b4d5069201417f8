// Package cmd implements the rp CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/config"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"
	"github.com/nagaosooooooora-dev/roman-points/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir     string
	flagDays        int
	flagDate        string
	flagQuiet       bool
	flagShowDeleted bool
)

var rootCmd = &cobra.Command{
	Use:   "rp",
	Short: "Personal point ledger",
	Long:  "Track earn/spend point events, chart your balance, and forecast savings goals.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger data directory (default XDG data dir)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Reference date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagShowDeleted, "deleted", false, "Include logically deleted entries")
}

// loadedConfig caches the config for the life of the command.
var loadedConfig *config.Config

func getConfig() config.Config {
	if loadedConfig == nil {
		cfg, err := config.Load()
		if err != nil && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		}
		loadedConfig = &cfg
	}
	return *loadedConfig
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if dir := getConfig().General.DataDir; dir != "" {
		return dir
	}
	return config.DefaultDataDir()
}

// openStore opens the ledger database under the data directory.
func openStore() (*store.Store, error) {
	return store.Open(filepath.Join(dataDir(), "ledger.db"))
}

// refDate returns the reference "today" — the wall clock unless
// overridden by --date. Aggregation and forecasting only ever see this
// value, never the clock itself.
func refDate() (time.Time, error) {
	if flagDate == "" {
		return ledger.Day(time.Now()), nil
	}
	d, err := ledger.ParseDay(flagDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", flagDate)
	}
	return d, nil
}

// windowDays returns the active report window length.
func windowDays() int {
	if flagDays > 0 {
		return flagDays
	}
	if d := getConfig().General.DefaultDays; d > 0 {
		return d
	}
	return 30
}

// rangeWindow computes the [start, end] day range ending at the
// reference date.
func rangeWindow(today time.Time) (time.Time, time.Time) {
	end := ledger.Day(today)
	start := end.AddDate(0, 0, -(windowDays() - 1))
	return start, end
}

// snapshot is a full in-memory read of the ledger store, taken before
// rendering and re-taken after every mutation.
type snapshot struct {
	txs     []model.Transaction
	actions []model.Action
	options []model.ActionOption
	goals   []model.Goal
}

func loadSnapshot(st *store.Store) (*snapshot, error) {
	txs, err := st.Transactions()
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	actions, err := st.Actions()
	if err != nil {
		return nil, fmt.Errorf("reading actions: %w", err)
	}
	options, err := st.ActionOptions()
	if err != nil {
		return nil, fmt.Errorf("reading action options: %w", err)
	}
	goals, err := st.Goals()
	if err != nil {
		return nil, fmt.Errorf("reading wishlist: %w", err)
	}
	return &snapshot{txs: txs, actions: actions, options: options, goals: goals}, nil
}

// visibleTxs applies the --deleted toggle.
func (s *snapshot) visibleTxs() []model.Transaction {
	if flagShowDeleted {
		return s.txs
	}
	return ledger.Alive(s.txs)
}

// liveActions returns non-deleted, active actions in display order.
func (s *snapshot) liveActions() []model.Action {
	var out []model.Action
	for _, a := range s.actions {
		if !a.Deleted && a.Active {
			out = append(out, a)
		}
	}
	model.SortActions(out)
	return out
}

// liveGoals returns non-deleted wishlist goals in display order.
func (s *snapshot) liveGoals() []model.Goal {
	var out []model.Goal
	for _, g := range s.goals {
		if !g.Deleted {
			out = append(out, g)
		}
	}
	return out
}
