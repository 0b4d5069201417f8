package tui

import (
	"fmt"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/config"
	"github.com/nagaosooooooora-dev/roman-points/internal/forecast"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/components"
)

func (a App) renderOverviewTab(cw int) string {
	cfg := loadConfigOrDefault()

	monthNote := ""
	if cfg.Rules.MonthlyEarnCap > 0 && a.monthEarned >= cfg.Rules.MonthlyEarnCap {
		monthNote = "earn rate halved"
	}

	todayNet := int64(0)
	if n := len(a.dailyNets); n > 0 {
		todayNet = a.dailyNets[n-1]
	}

	cards := components.MetricCardRow([]struct{ Label, Value, Note string }{
		{"Balance", cli.FormatPoints(a.balance), ""},
		{"This month", cli.FormatPoints(a.monthEarned), monthNote},
		{"Today", cli.FormatSigned(todayNet), ""},
		{"Daily avg", fmt.Sprintf("%.1f", a.avgDaily), fmt.Sprintf("last %dd", cfg.General.EarnLookbackDays)},
	}, cw)

	inner := components.CardInnerWidth(cw)
	chart := components.BalanceChart(a.series, inner, 9)
	body := chart + "\n " + components.NetBars(a.dailyNets)
	balanceCard := components.ContentCard(
		fmt.Sprintf("Balance · last %d days", a.days), body, cw)

	out := cards + "\n" + balanceCard

	// Next goal card: the closest unreached goal, if any.
	if g, ok := a.nextGoal(); ok {
		p := a.forecastParams(cfg)
		p.Target = g.Target
		res := forecast.Simulate(p)

		eta := "out of reach at the current rate"
		switch {
		case res.Reached && res.Days == 0:
			eta = "reached"
		case res.Reached:
			eta = fmt.Sprintf("%s · %s", cli.FormatDays(res.Days), cli.FormatDate(res.ReachDate))
		}

		pct := 0.0
		if g.Target > 0 {
			pct = float64(a.balance) / float64(g.Target)
		}
		barW := inner - 46
		if barW < 10 {
			barW = 10
		}
		bar := components.GoalBar(truncStr(g.Name, 18), pct, eta, 18, barW)
		out += "\n" + components.ContentCard("Next goal", bar, cw)
	}

	return out
}

// nextGoal picks the unreached goal with the smallest target, falling
// back to the first goal when everything is already funded.
func (a App) nextGoal() (model.Goal, bool) {
	goals := a.liveGoals()
	if len(goals) == 0 {
		return model.Goal{}, false
	}
	best := -1
	for i, cand := range goals {
		if cand.Target <= a.balance {
			continue
		}
		if best < 0 || cand.Target < goals[best].Target {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}
	return goals[best], true
}

func (a App) forecastParams(cfg config.Config) forecast.Params {
	return forecast.Params{
		StartBalance:    a.balance,
		AvgDailyEarn:    a.avgDaily,
		StartDate:       a.today,
		EarnedThisMonth: ledger.EarnedInMonth(a.txs, a.today),
		MaxDays:         cfg.Rules.ForecastHorizonDays,
		Rules:           cfg.ForecastRules(),
	}
}
