package forecast

import (
	"math"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestSimulate_GoalAlreadyMet(t *testing.T) {
	start := mustDate(t, "2025-03-15")
	for _, target := range []int64{5000, 0, -200} {
		r := Simulate(Params{StartBalance: 5000, Target: target, AvgDailyEarn: 100, StartDate: start})
		if !r.Reached {
			t.Fatalf("target %d: Reached = false, want true", target)
		}
		if r.Days != 0 {
			t.Fatalf("target %d: Days = %d, want 0", target, r.Days)
		}
		if !r.ReachDate.Equal(start) {
			t.Fatalf("target %d: ReachDate = %s, want %s", target, r.ReachDate, start)
		}
		if r.FinalBalance != 5000 {
			t.Fatalf("target %d: FinalBalance = %d, want 5000", target, r.FinalBalance)
		}
	}
}

func TestSimulate_InvalidRateUnreachable(t *testing.T) {
	start := mustDate(t, "2025-03-01")
	for _, rate := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		r := Simulate(Params{StartBalance: 100, Target: 1000, AvgDailyEarn: rate, StartDate: start})
		if r.Reached {
			t.Fatalf("rate %v: Reached = true, want false", rate)
		}
		if !r.ReachDate.IsZero() {
			t.Fatalf("rate %v: ReachDate = %s, want zero", rate, r.ReachDate)
		}
		if r.FinalBalance != 100 {
			t.Fatalf("rate %v: FinalBalance = %d, want 100", rate, r.FinalBalance)
		}
	}
}

func TestSimulate_FindsSmallestDay(t *testing.T) {
	// No throttle, no month-end day in range: plain linear progress.
	r := Simulate(Params{
		StartBalance: 0,
		Target:       950,
		AvgDailyEarn: 100,
		StartDate:    mustDate(t, "2025-03-01"),
	})
	if !r.Reached {
		t.Fatal("Reached = false, want true")
	}
	if r.Days != 10 {
		t.Fatalf("Days = %d, want 10 (day 9 ends at 900 < 950)", r.Days)
	}
	if got := r.ReachDate.Format("2006-01-02"); got != "2025-03-10" {
		t.Fatalf("ReachDate = %s, want 2025-03-10", got)
	}
	if r.FinalBalance != 1000 {
		t.Fatalf("FinalBalance = %d, want 1000", r.FinalBalance)
	}
}

func TestSimulate_ThrottleSeededAtCap(t *testing.T) {
	// Month already at the cap: every earn is halved from day one.
	r := Simulate(Params{
		StartBalance:    0,
		Target:          100,
		AvgDailyEarn:    100,
		StartDate:       mustDate(t, "2025-03-01"),
		EarnedThisMonth: DefaultMonthlyEarnCap,
	})
	if !r.Reached {
		t.Fatal("Reached = false, want true")
	}
	if r.Days != 2 {
		t.Fatalf("Days = %d, want 2 (halved 50/day, not 100/day)", r.Days)
	}
}

func TestSimulate_MonthEndDeductionThreshold(t *testing.T) {
	// Balance ends the month at exactly the deduction floor: no deduction.
	r := Simulate(Params{
		StartBalance: 9900,
		Target:       10000,
		AvgDailyEarn: 100,
		StartDate:    mustDate(t, "2025-01-31"),
	})
	if !r.Reached || r.Days != 1 {
		t.Fatalf("Reached = %v, Days = %d, want reached on day 1", r.Reached, r.Days)
	}
	if r.FinalBalance != 10000 {
		t.Fatalf("FinalBalance = %d, want 10000 (no deduction at the floor)", r.FinalBalance)
	}

	// One point above the floor: the deduction fires.
	r = Simulate(Params{
		StartBalance: 9901,
		Target:       50000,
		AvgDailyEarn: 100,
		StartDate:    mustDate(t, "2025-01-31"),
		MaxDays:      1,
	})
	if r.Reached {
		t.Fatal("Reached = true, want false at 1-day horizon")
	}
	if r.FinalBalance != 5001 {
		t.Fatalf("FinalBalance = %d, want 5001 (10001 - 5000)", r.FinalBalance)
	}
}

func TestSimulate_DeductionBeforeTargetCheck(t *testing.T) {
	// The earn crosses the target on a month-end day, but the deduction
	// applies first and pulls the balance back under it.
	r := Simulate(Params{
		StartBalance: 10500,
		Target:       11000,
		AvgDailyEarn: 1000,
		StartDate:    mustDate(t, "2025-01-31"),
	})
	if !r.Reached {
		t.Fatal("Reached = false, want true")
	}
	if r.Days != 6 {
		t.Fatalf("Days = %d, want 6 (day 1 deducted back to 6500)", r.Days)
	}
	if got := r.ReachDate.Format("2006-01-02"); got != "2025-02-05" {
		t.Fatalf("ReachDate = %s, want 2025-02-05", got)
	}
}

func TestSimulate_ConcreteTwoDayScenario(t *testing.T) {
	r := Simulate(Params{
		StartBalance: 9000,
		Target:       10000,
		AvgDailyEarn: 500,
		StartDate:    mustDate(t, "2025-01-01"),
	})
	if !r.Reached {
		t.Fatal("Reached = false, want true")
	}
	if r.Days != 2 {
		t.Fatalf("Days = %d, want 2", r.Days)
	}
	if got := r.ReachDate.Format("2006-01-02"); got != "2025-01-02" {
		t.Fatalf("ReachDate = %s, want 2025-01-02", got)
	}
	if r.FinalBalance != 10000 {
		t.Fatalf("FinalBalance = %d, want 10000", r.FinalBalance)
	}
}

func TestSimulate_FractionalRateFloorsToZero(t *testing.T) {
	// floor(0.5) = 0/day: no progress, horizon exhausts.
	r := Simulate(Params{
		StartBalance: 0,
		Target:       10,
		AvgDailyEarn: 0.5,
		StartDate:    mustDate(t, "2025-03-01"),
		MaxDays:      50,
	})
	if r.Reached {
		t.Fatal("Reached = true, want false")
	}
	if r.FinalBalance != 0 {
		t.Fatalf("FinalBalance = %d, want 0", r.FinalBalance)
	}
}

func TestSimulate_NegativeSeedClampedToZero(t *testing.T) {
	r := Simulate(Params{
		StartBalance:    0,
		Target:          200,
		AvgDailyEarn:    100,
		StartDate:       mustDate(t, "2025-03-01"),
		EarnedThisMonth: -9999,
	})
	if !r.Reached || r.Days != 2 {
		t.Fatalf("Reached = %v, Days = %d, want reached in 2 days", r.Reached, r.Days)
	}
}
