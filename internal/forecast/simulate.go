package forecast

import (
	"math"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
)

// Params are the inputs to a forecast simulation.
type Params struct {
	StartBalance    int64     // current ledger balance
	Target          int64     // goal amount
	AvgDailyEarn    float64   // estimated earn per future day, assumed uniform
	StartDate       time.Time // day 1 of the simulation, normally today
	EarnedThisMonth int64     // seeds the throttle for StartDate's month
	MaxDays         int       // horizon; 0 means DefaultHorizonDays
	Rules           Rules     // zero value means DefaultRules
}

// Result is the outcome of a simulation. Reached == false means the
// goal is out of reach under the given inputs — insufficient data or a
// horizon exhausted — and is a defined output, never an error.
type Result struct {
	Reached      bool
	Days         int       // 0 when the goal was already met, or when !Reached
	ReachDate    time.Time // zero when !Reached
	FinalBalance int64     // running balance at termination or cutoff
}

// Simulate runs the deterministic day-by-day balance projection: each
// simulated day earns floor(AvgDailyEarn), halved while the monthly
// throttle is active; on the last day of each month the month-end
// deduction fires when the balance is high enough and the monthly
// earned total resets.
func Simulate(p Params) Result {
	rules := p.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	maxDays := p.MaxDays
	if maxDays <= 0 {
		maxDays = DefaultHorizonDays
	}
	start := ledger.Day(p.StartDate)

	if p.Target <= p.StartBalance {
		return Result{Reached: true, ReachDate: start, FinalBalance: p.StartBalance}
	}
	if math.IsNaN(p.AvgDailyEarn) || math.IsInf(p.AvgDailyEarn, 0) || p.AvgDailyEarn <= 0 {
		return Result{FinalBalance: p.StartBalance}
	}

	throttle := Throttle{Cap: rules.MonthlyEarnCap, Earned: max(0, p.EarnedThisMonth)}
	dailyEarn := int64(math.Floor(p.AvgDailyEarn))
	balance := p.StartBalance
	date := start

	for day := 1; day <= maxDays; day++ {
		balance += throttle.Apply(dailyEarn)

		if ledger.LastDayOfMonth(date) {
			if balance > rules.DeductionMinBalance {
				balance -= rules.MonthEndDeduction
			}
			throttle.ResetMonth()
		}

		if balance >= p.Target {
			return Result{Reached: true, Days: day, ReachDate: date, FinalBalance: balance}
		}
		date = date.AddDate(0, 0, 1)
	}

	return Result{FinalBalance: balance}
}
