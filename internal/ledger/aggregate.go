package ledger

import (
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

// Alive returns the non-deleted transactions.
func Alive(txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if !t.Deleted {
			out = append(out, t)
		}
	}
	return out
}

// SumAmounts sums the amounts of the given transactions as-is. It does
// no deletion filtering; callers pre-filter with Alive when they want
// the live balance.
func SumAmounts(txs []model.Transaction) int64 {
	var sum int64
	for _, t := range txs {
		sum += t.Amount
	}
	return sum
}

// EarnedOn sums the positive, non-deleted amounts dated on the given
// calendar day.
func EarnedOn(txs []model.Transaction, day time.Time) int64 {
	key := DayKey(day)
	var sum int64
	for _, t := range txs {
		if t.Deleted || t.Amount <= 0 {
			continue
		}
		if DayKey(t.Date) == key {
			sum += t.Amount
		}
	}
	return sum
}

// EarnedInMonth sums the positive, non-deleted amounts dated in the
// same calendar month as ref. Seeds the earn-rate throttle.
func EarnedInMonth(txs []model.Transaction, ref time.Time) int64 {
	key := MonthKey(ref)
	var sum int64
	for _, t := range txs {
		if t.Deleted || t.Amount <= 0 {
			continue
		}
		if MonthKey(t.Date) == key {
			sum += t.Amount
		}
	}
	return sum
}

// AverageDailyEarn returns the mean daily earned amount over the
// lookbackDays calendar days ending at today, inclusive. Days with no
// earnings count as zero, so the divisor is always lookbackDays.
// Returns 0 for a non-positive lookback.
func AverageDailyEarn(txs []model.Transaction, lookbackDays int, today time.Time) float64 {
	if lookbackDays <= 0 {
		return 0
	}
	start := Day(today).AddDate(0, 0, -(lookbackDays - 1))
	startKey, endKey := DayKey(start), DayKey(today)

	var total int64
	for _, t := range txs {
		if t.Deleted || t.Amount <= 0 {
			continue
		}
		key := DayKey(t.Date)
		if key >= startKey && key <= endKey {
			total += t.Amount
		}
	}
	return float64(total) / float64(lookbackDays)
}

// OpeningBalanceBefore sums all non-deleted amounts dated strictly
// before start. This is the baseline for range-scoped charts and for
// the forecast simulation.
func OpeningBalanceBefore(txs []model.Transaction, start time.Time) int64 {
	key := DayKey(start)
	var sum int64
	for _, t := range txs {
		if t.Deleted {
			continue
		}
		if DayKey(t.Date) < key {
			sum += t.Amount
		}
	}
	return sum
}

// DailyNet computes the per-day net amount for every calendar day from
// start through end, non-deleted rows only. Every day in the range is
// present in the map so charts render gaps as zeros.
func DailyNet(txs []model.Transaction, start, end time.Time) map[string]int64 {
	net := make(map[string]int64)
	for _, d := range DaysInclusive(start, end) {
		net[DayKey(d)] = 0
	}
	startKey, endKey := DayKey(start), DayKey(end)
	for _, t := range txs {
		if t.Deleted {
			continue
		}
		key := DayKey(t.Date)
		if key < startKey || key > endKey {
			continue
		}
		net[key] += t.Amount
	}
	return net
}

// BalanceSeries returns the running balance at the close of each day
// from start through end: the opening balance before start plus the
// cumulative daily net.
func BalanceSeries(txs []model.Transaction, start, end time.Time) []int64 {
	days := DaysInclusive(start, end)
	net := DailyNet(txs, start, end)

	series := make([]int64, 0, len(days))
	running := OpeningBalanceBefore(txs, start)
	for _, d := range days {
		running += net[DayKey(d)]
		series = append(series, running)
	}
	return series
}

// BalanceOn returns the ledger balance as of the end of the given day:
// the sum of all non-deleted amounts dated on or before it.
func BalanceOn(txs []model.Transaction, day time.Time) int64 {
	key := DayKey(day)
	var sum int64
	for _, t := range txs {
		if t.Deleted {
			continue
		}
		if DayKey(t.Date) <= key {
			sum += t.Amount
		}
	}
	return sum
}
