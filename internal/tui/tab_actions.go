package tui

import (
	"fmt"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"
	"github.com/nagaosooooooora-dev/roman-points/internal/store"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type actState struct {
	cursor    int
	picking   bool // option picker open for a branched action
	pickIdx   int
	pickOpts  []model.ActionOption
	pickOwner model.Action
}

func (a App) updateActionKeys(key string) (tea.Model, tea.Cmd, bool) {
	actions := a.liveActions()
	switch key {
	case "j", "down":
		if a.act.cursor < len(actions)-1 {
			a.act.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.act.cursor > 0 {
			a.act.cursor--
		}
		return a, nil, true
	case "enter", " ":
		if a.act.cursor >= len(actions) {
			return a, nil, true
		}
		action := actions[a.act.cursor]
		if !action.Active || ledger.LimitReached(action, a.txs, a.today) {
			a.status = fmt.Sprintf("%q is not available today", action.Name)
			return a, nil, true
		}
		if action.Type == model.ActionBranched {
			a.act.picking = true
			a.act.pickIdx = 0
			a.act.pickOpts = action.Options(a.options)
			a.act.pickOwner = action
			return a, nil, true
		}
		return a, recordEarnCmd(a.dbPath, action, model.ActionOption{}, a.today), true
	}
	return a, nil, false
}

func (a App) updateActionPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.act.pickIdx < len(a.act.pickOpts)-1 {
			a.act.pickIdx++
		}
	case "k", "up":
		if a.act.pickIdx > 0 {
			a.act.pickIdx--
		}
	case "enter", " ":
		opt := a.act.pickOpts[a.act.pickIdx]
		owner := a.act.pickOwner
		a.act.picking = false
		return a, recordEarnCmd(a.dbPath, owner, opt, a.today)
	case "esc", "q":
		a.act.picking = false
	}
	return a, nil
}

// recordEarnCmd writes an earn for the action (or one of its options)
// dated today, halving it when the month's earned total has already
// reached the cap, then reloads.
func recordEarnCmd(dbPath string, action model.Action, opt model.ActionOption, today time.Time) tea.Cmd {
	return func() tea.Msg {
		status, err := recordEarn(dbPath, action, opt, today)
		if err != nil {
			status = fmt.Sprintf("earn failed: %v", err)
		}
		return WriteDoneMsg{Status: status, Data: loadData(dbPath)}
	}
}

func recordEarn(dbPath string, action model.Action, opt model.ActionOption, today time.Time) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	txs, err := st.Transactions()
	if err != nil {
		return "", err
	}

	points := action.Points
	memo := ""
	if opt.ID != 0 {
		points = opt.Points
		memo = opt.Label
	}

	cfg := loadConfigOrDefault()
	throttle := forecast.Throttle{
		Cap:    cfg.Rules.MonthlyEarnCap,
		Earned: ledger.EarnedInMonth(txs, today),
	}
	halved := throttle.Active()
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
		return "", err
	}

	label := action.Name
	if memo != "" {
		label += " / " + memo
	}
	status := fmt.Sprintf("#%d %s %s", id, label, cli.FormatSigned(earned))
	if halved {
		status += " (halved: monthly cap reached)"
	}
	return status, nil
}

func (a App) renderActionsTab(cw, contentH int) string {
	t := theme.Active
	actions := a.liveActions()

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)

	if len(actions) == 0 {
		return dimStyle.Render("\n  no actions yet (run `rp actions add`)")
	}

	if a.act.picking {
		return a.renderActionPicker()
	}

	nameW := cw - 40
	if nameW < 12 {
		nameW = 12
	}

	out := headerStyle.Render(fmt.Sprintf(" %-*s %-14s %-9s %-9s", nameW, "Action", "Points", "Today", "Month")) + "\n"
	for i, action := range actions {
		points := cli.FormatSigned(action.Points)
		if action.Type == model.ActionBranched {
			points = fmt.Sprintf("%d options", len(action.Options(a.options)))
		}
		line := fmt.Sprintf(" %-*s %-14s %d/%-7s %d/%-7s",
			nameW, truncStr(action.Name, nameW), points,
			ledger.CountActionOn(a.txs, action.ID, a.today), cli.FormatLimit(action.DailyLimit),
			ledger.CountActionInMonth(a.txs, action.ID, a.today), cli.FormatLimit(action.MonthlyLimit))

		switch {
		case !action.Active:
			line += dimStyle.Render(" hidden")
		case ledger.LimitReached(action, a.txs, a.today):
			line += warnStyle.Render(" capped")
		}
		if i == a.act.cursor {
			line = selStyle.Render(line)
		}
		out += line + "\n"
	}

	out += dimStyle.Render(" j/k move · enter record")
	return out
}

func (a App) renderActionPicker() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	out := "\n " + titleStyle.Render(a.act.pickOwner.Name) + "\n\n"
	for i, opt := range a.act.pickOpts {
		line := fmt.Sprintf("   %-20s %s", truncStr(opt.Label, 20), cli.FormatSigned(opt.Points))
		if i == a.act.pickIdx {
			line = selStyle.Render(line)
		}
		out += line + "\n"
	}
	out += "\n" + dimStyle.Render(" enter record · esc cancel")
	return out
}
