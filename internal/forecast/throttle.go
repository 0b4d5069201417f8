// Package forecast implements the earn-rate throttle and the day-by-day
// goal forecast simulation.
package forecast

// Default rule constants. The business intent behind the specific
// numbers is undocumented upstream, so they stay configurable (see
// config.Rules) rather than hard truths of the domain.
const (
	DefaultMonthlyEarnCap      = 12500
	DefaultMonthEndDeduction   = 5000
	DefaultDeductionMinBalance = 10000
	DefaultHorizonDays         = 3650
)

// Rules holds the closed-world rule constants shared by the live earn
// path and the simulator.
type Rules struct {
	MonthlyEarnCap      int64 // monthly earned total at which further earns halve
	MonthEndDeduction   int64 // points deducted on the last day of each month
	DeductionMinBalance int64 // deduction fires only when balance exceeds this
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		MonthlyEarnCap:      DefaultMonthlyEarnCap,
		MonthEndDeduction:   DefaultMonthEndDeduction,
		DeductionMinBalance: DefaultDeductionMinBalance,
	}
}

// Throttle tracks a running monthly earned total and halves earns once
// the total has reached the cap. The check happens before each earn is
// applied, so the earn that crosses the cap is not itself halved; only
// earns after the cap was already met are.
type Throttle struct {
	Cap    int64 // 0 or negative disables the throttle
	Earned int64 // earned so far this calendar month
}

// Active reports whether the next earn would be halved.
func (t *Throttle) Active() bool {
	return t.Cap > 0 && t.Earned >= t.Cap
}

// Apply returns the amount actually earned for a nominal earn, halved
// by integer division when the throttle is active, and adds it to the
// running monthly total.
func (t *Throttle) Apply(amount int64) int64 {
	if t.Active() {
		amount /= 2
	}
	t.Earned += amount
	return amount
}

// ResetMonth clears the running total for a new calendar month.
func (t *Throttle) ResetMonth() {
	t.Earned = 0
}
