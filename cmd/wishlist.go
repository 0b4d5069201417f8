package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"

	"github.com/spf13/cobra"
)

var wishCmd = &cobra.Command{
	Use:     "wish",
	Aliases: []string{"wishlist", "goals"},
	Short:   "Track savings goals",
	RunE:    runWishList,
}

var wishAddCmd = &cobra.Command{
	Use:   "add <target> <name...>",
	Short: "Add a savings goal",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runWishAdd,
}

var wishRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishRm,
}

func init() {
	wishCmd.AddCommand(wishAddCmd)
	wishCmd.AddCommand(wishRmCmd)
	rootCmd.AddCommand(wishCmd)
}

func runWishList(_ *cobra.Command, _ []string) error {
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

	goals := snap.liveGoals()
	fmt.Println(cli.RenderTitle("WISHLIST"))
	if len(goals) == 0 {
		fmt.Println(cli.StyleMuted("  no goals yet (try `rp wish add`)"))
		return nil
	}

	cfg := getConfig()
	txs := snap.visibleTxs()
	balance := ledger.SumAmounts(txs)
	params := forecast.Params{
		StartBalance:    balance,
		AvgDailyEarn:    ledger.AverageDailyEarn(txs, cfg.General.EarnLookbackDays, today),
		StartDate:       today,
		EarnedThisMonth: ledger.EarnedInMonth(txs, today),
		MaxDays:         cfg.Rules.ForecastHorizonDays,
		Rules:           cfg.ForecastRules(),
	}

	t := cli.Table{Headers: []string{"#", "Goal", "Target", "Progress", "ETA"}}
	for _, g := range goals {
		pct := 0.0
		if g.Target > 0 {
			pct = float64(balance) / float64(g.Target)
		}
		p := params
		p.Target = g.Target
		res := forecast.Simulate(p)
		eta := cli.StyleMuted("out of reach")
		switch {
		case res.Reached && res.Days == 0:
			eta = "reached"
		case res.Reached:
			eta = fmt.Sprintf("%s (%s)", cli.FormatDays(res.Days), cli.FormatDate(res.ReachDate))
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", g.ID),
			g.Name,
			cli.FormatPoints(g.Target),
			cli.RenderProgressBar(pct, 16),
			eta,
		})
	}
	fmt.Println(cli.RenderTable(t))
	return nil
}

func runWishAdd(_ *cobra.Command, args []string) error {
	target, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || target <= 0 {
		return fmt.Errorf("target %q: want a positive whole number", args[0])
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return fmt.Errorf("goal name must not be empty")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}

	id, err := st.AddGoal(model.Goal{
		Name:      name,
		Target:    target,
		SortOrder: len(snap.liveGoals()),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  created goal #%d %q at %s\n", id, name, cli.FormatPoints(target))
	}
	return nil
}

func runWishRm(_ *cobra.Command, args []string) error {
	id, err := parseTxID(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.Goal(id)
	if err != nil {
		return fmt.Errorf("no goal #%d", id)
	}
	g.Deleted = true
	if err := st.PutGoal(g); err != nil {
		return fmt.Errorf("removing goal #%d: %w", id, err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  removed goal #%d %q\n", g.ID, g.Name)
	}
	return nil
}
