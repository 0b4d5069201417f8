package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"

	"github.com/spf13/cobra"
)

var earnCmd = &cobra.Command{
	Use:   "earn <action> [option]",
	Short: "Record an earn event for an action",
	Long: `Record an earn event. For branched actions, name the option to pick
the branch. The entry is dated today; daily/monthly caps apply, and the
earn is halved once this month's earned total has reached the cap.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEarn,
}

func init() {
	rootCmd.AddCommand(earnCmd)
}

func findAction(actions []model.Action, name string) (model.Action, error) {
	var match model.Action
	found := false
	for _, a := range actions {
		if a.Deleted {
			continue
		}
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
		if !found && strings.Contains(strings.ToLower(a.Name), strings.ToLower(name)) {
			match, found = a, true
		}
	}
	if found {
		return match, nil
	}
	return model.Action{}, fmt.Errorf("no action matching %q (see `rp actions`)", name)
}

func runEarn(_ *cobra.Command, args []string) error {
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

	action, err := findAction(snap.actions, args[0])
	if err != nil {
		return err
	}
	if !action.Active {
		return fmt.Errorf("action %q is hidden (enable it with `rp actions enable`)", action.Name)
	}
	if ledger.LimitReached(action, snap.txs, today) {
		return fmt.Errorf("action %q has reached its usage cap (daily %s, monthly %s)",
			action.Name, cli.FormatLimit(action.DailyLimit), cli.FormatLimit(action.MonthlyLimit))
	}

	points := action.Points
	memo := ""
	if action.Type == model.ActionBranched {
		if len(args) < 2 {
			var labels []string
			for _, o := range action.Options(snap.options) {
				labels = append(labels, o.Label)
			}
			return fmt.Errorf("action %q is branched; pick one of: %s",
				action.Name, strings.Join(labels, ", "))
		}
		opt, err := findOption(action, snap.options, args[1])
		if err != nil {
			return err
		}
		points = opt.Points
		memo = opt.Label
	} else if len(args) == 2 {
		return fmt.Errorf("action %q has no options", action.Name)
	}

	// Earn-rate throttle: check against the monthly total before applying.
	cfg := getConfig()
	throttle := forecast.Throttle{
		Cap:    cfg.Rules.MonthlyEarnCap,
		Earned: ledger.EarnedInMonth(snap.txs, today),
	}
	throttled := throttle.Active()
	earned := throttle.Apply(points)

	id, err := st.AddTransaction(model.Transaction{
		CreatedAt:  time.Now(),
		Date:       today,
		Amount:     earned,
		Kind:       model.KindEarn,
		SourceType: model.SourceAction,
		SourceID:   action.ID,
		SourceName: action.Name,
		Memo:       memo,
	})
	if err != nil {
		return fmt.Errorf("recording earn: %w", err)
	}

	if !flagQuiet {
		label := action.Name
		if memo != "" {
			label += " / " + memo
		}
		fmt.Fprintf(os.Stderr, "  #%d  %s  %s", id, label, cli.FormatSigned(earned))
		if throttled {
			fmt.Fprintf(os.Stderr, "  (halved from %s: monthly cap reached)", cli.FormatSigned(points))
		}
		fmt.Fprintln(os.Stderr)
	}

	return reprintSummary(st)
}

func findOption(a model.Action, options []model.ActionOption, label string) (model.ActionOption, error) {
	opts := a.Options(options)
	for _, o := range opts {
		if strings.EqualFold(o.Label, label) {
			return o, nil
		}
	}
	for _, o := range opts {
		if strings.Contains(strings.ToLower(o.Label), strings.ToLower(label)) {
			return o, nil
		}
	}
	return model.ActionOption{}, fmt.Errorf("no option matching %q for action %q", label, a.Name)
}
