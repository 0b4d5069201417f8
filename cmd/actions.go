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

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Manage earn actions",
	RunE:  runActionsList,
}

var (
	actionAddPoints  int64
	actionAddDaily   int
	actionAddMonthly int
	actionAddOptions []string
)

var actionsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an action",
	Long: `Create an earn action. A plain action awards --points. Passing
--option label=points two or more times makes a branched action whose
points come from the picked option instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runActionsAdd,
}

var (
	actionSetName    string
	actionSetPoints  int64
	actionSetDaily   int
	actionSetMonthly int
)

var actionsSetCmd = &cobra.Command{
	Use:   "set <action>",
	Short: "Change an action's name, points, or caps",
	Args:  cobra.ExactArgs(1),
	RunE:  runActionsSet,
}

var actionsRmCmd = &cobra.Command{
	Use:   "rm <action>",
	Short: "Remove an action (its history stays)",
	Args:  cobra.ExactArgs(1),
	RunE:  runActionsRm,
}

var actionsEnableCmd = &cobra.Command{
	Use:   "enable <action>",
	Short: "Show an action in pickers again",
	Args:  cobra.ExactArgs(1),
	RunE:  func(_ *cobra.Command, args []string) error { return setActionActive(args[0], true) },
}

var actionsDisableCmd = &cobra.Command{
	Use:   "disable <action>",
	Short: "Hide an action from pickers without removing it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(_ *cobra.Command, args []string) error { return setActionActive(args[0], false) },
}

var actionsMoveCmd = &cobra.Command{
	Use:   "move <action> <position>",
	Short: "Reorder an action (1 = first)",
	Args:  cobra.ExactArgs(2),
	RunE:  runActionsMove,
}

func init() {
	actionsAddCmd.Flags().Int64Var(&actionAddPoints, "points", 0, "points awarded per use")
	actionsAddCmd.Flags().IntVar(&actionAddDaily, "daily", 0, "max uses per day (0 = unlimited)")
	actionsAddCmd.Flags().IntVar(&actionAddMonthly, "monthly", 0, "max uses per month (0 = unlimited)")
	actionsAddCmd.Flags().StringArrayVar(&actionAddOptions, "option", nil, "branch as label=points (repeat, at least twice)")

	actionsSetCmd.Flags().StringVar(&actionSetName, "name", "", "rename the action")
	actionsSetCmd.Flags().Int64Var(&actionSetPoints, "points", 0, "points awarded per use")
	actionsSetCmd.Flags().IntVar(&actionSetDaily, "daily", 0, "max uses per day (0 = unlimited)")
	actionsSetCmd.Flags().IntVar(&actionSetMonthly, "monthly", 0, "max uses per month (0 = unlimited)")

	actionsCmd.AddCommand(actionsAddCmd)
	actionsCmd.AddCommand(actionsSetCmd)
	actionsCmd.AddCommand(actionsRmCmd)
	actionsCmd.AddCommand(actionsEnableCmd)
	actionsCmd.AddCommand(actionsDisableCmd)
	actionsCmd.AddCommand(actionsMoveCmd)
	rootCmd.AddCommand(actionsCmd)
}

func runActionsList(_ *cobra.Command, _ []string) error {
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

	// Hidden actions stay listed so they can be re-enabled.
	var actions []model.Action
	for _, a := range snap.actions {
		if !a.Deleted {
			actions = append(actions, a)
		}
	}
	model.SortActions(actions)

	fmt.Println(cli.RenderTitle("ACTIONS"))
	if len(actions) == 0 {
		fmt.Println(cli.StyleMuted("  no actions yet (try `rp actions add`)"))
		return nil
	}

	t := cli.Table{Headers: []string{"#", "Action", "Points", "Today", "Month", ""}}
	for _, a := range actions {
		points := cli.FormatSigned(a.Points)
		if a.Type == model.ActionBranched {
			var parts []string
			for _, o := range a.Options(snap.options) {
				parts = append(parts, fmt.Sprintf("%s %s", o.Label, cli.FormatSigned(o.Points)))
			}
			points = strings.Join(parts, ", ")
		}
		note := ""
		if !a.Active {
			note = "hidden"
		} else if ledger.LimitReached(a, snap.txs, today) {
			note = "capped"
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", a.ID),
			a.Name,
			points,
			fmt.Sprintf("%d/%s", ledger.CountActionOn(snap.txs, a.ID, today), cli.FormatLimit(a.DailyLimit)),
			fmt.Sprintf("%d/%s", ledger.CountActionInMonth(snap.txs, a.ID, today), cli.FormatLimit(a.MonthlyLimit)),
			cli.StyleMuted(note),
		})
	}
	fmt.Println(cli.RenderTable(t))
	return nil
}

func parseOptionSpec(spec string) (string, int64, error) {
	label, pts, ok := strings.Cut(spec, "=")
	if !ok || label == "" {
		return "", 0, fmt.Errorf("option %q: want label=points", spec)
	}
	n, err := strconv.ParseInt(pts, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("option %q: points %q is not a whole number", spec, pts)
	}
	return label, n, nil
}

func runActionsAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("action name must not be empty")
	}
	branched := len(actionAddOptions) > 0
	if branched && len(actionAddOptions) < 2 {
		return fmt.Errorf("a branched action needs at least two --option values")
	}
	if !branched && !cmd.Flags().Changed("points") {
		return fmt.Errorf("pass --points, or --option twice for a branched action")
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
	existing := 0
	for _, a := range snap.actions {
		if a.Deleted {
			continue
		}
		existing++
		if strings.EqualFold(a.Name, name) {
			return fmt.Errorf("an action named %q already exists", a.Name)
		}
	}

	a := model.Action{
		Name:      name,
		Points:    actionAddPoints,
		Type:      model.ActionSimple,
		Active:    true,
		SortOrder: existing,
		CreatedAt: time.Now(),
	}
	if cmd.Flags().Changed("daily") {
		a.DailyLimit = &actionAddDaily
	}
	if cmd.Flags().Changed("monthly") {
		a.MonthlyLimit = &actionAddMonthly
	}
	if branched {
		a.Type = model.ActionBranched
		a.Points = 0
	}

	id, err := st.AddAction(a)
	if err != nil {
		return fmt.Errorf("creating action: %w", err)
	}

	for i, spec := range actionAddOptions {
		label, pts, err := parseOptionSpec(spec)
		if err != nil {
			return err
		}
		if _, err := st.AddActionOption(model.ActionOption{
			ActionID:  id,
			Label:     label,
			Points:    pts,
			SortOrder: i,
		}); err != nil {
			return fmt.Errorf("creating option %q: %w", label, err)
		}
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  created action #%d %q\n", id, name)
	}
	return nil
}

func runActionsSet(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}
	a, err := findAction(snap.actions, args[0])
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("name") {
		a.Name, changed = strings.TrimSpace(actionSetName), true
		if a.Name == "" {
			return fmt.Errorf("action name must not be empty")
		}
	}
	if cmd.Flags().Changed("points") {
		if a.Type == model.ActionBranched {
			return fmt.Errorf("action %q is branched; points live on its options", a.Name)
		}
		a.Points, changed = actionSetPoints, true
	}
	if cmd.Flags().Changed("daily") {
		if actionSetDaily <= 0 {
			a.DailyLimit = nil
		} else {
			a.DailyLimit = &actionSetDaily
		}
		changed = true
	}
	if cmd.Flags().Changed("monthly") {
		if actionSetMonthly <= 0 {
			a.MonthlyLimit = nil
		} else {
			a.MonthlyLimit = &actionSetMonthly
		}
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change: pass --name, --points, --daily, or --monthly")
	}

	if err := st.PutAction(a); err != nil {
		return fmt.Errorf("saving action %q: %w", a.Name, err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  updated action #%d %q\n", a.ID, a.Name)
	}
	return nil
}

func runActionsRm(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}
	a, err := findAction(snap.actions, args[0])
	if err != nil {
		return err
	}

	// Tombstone only. Past earns keep their copied name and amount.
	a.Deleted = true
	if err := st.PutAction(a); err != nil {
		return fmt.Errorf("removing action %q: %w", a.Name, err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  removed action #%d %q (history kept)\n", a.ID, a.Name)
	}
	return nil
}

func setActionActive(name string, active bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := loadSnapshot(st)
	if err != nil {
		return err
	}
	a, err := findAction(snap.actions, name)
	if err != nil {
		return err
	}

	a.Active = active
	if err := st.PutAction(a); err != nil {
		return fmt.Errorf("saving action %q: %w", a.Name, err)
	}
	if !flagQuiet {
		state := "hidden"
		if active {
			state = "visible"
		}
		fmt.Fprintf(os.Stderr, "  action #%d %q is now %s\n", a.ID, a.Name, state)
	}
	return nil
}

func runActionsMove(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("position %q: want a number starting at 1", args[1])
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
	target, err := findAction(snap.actions, args[0])
	if err != nil {
		return err
	}

	var live []model.Action
	for _, a := range snap.actions {
		if !a.Deleted {
			live = append(live, a)
		}
	}
	model.SortActions(live)
	if pos > len(live) {
		pos = len(live)
	}

	// Rebuild the order with the target at its new slot, then renumber.
	reordered := make([]model.Action, 0, len(live))
	for _, a := range live {
		if a.ID != target.ID {
			reordered = append(reordered, a)
		}
	}
	reordered = append(reordered[:pos-1], append([]model.Action{target}, reordered[pos-1:]...)...)
	for i := range reordered {
		reordered[i].SortOrder = i
		if err := st.PutAction(reordered[i]); err != nil {
			return fmt.Errorf("saving action %q: %w", reordered[i].Name, err)
		}
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  moved action %q to position %d\n", target.Name, pos)
	}
	return nil
}
