package ledger

import (
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

// CountActionOn counts the non-deleted action-sourced transactions for
// the given action dated on the given day.
func CountActionOn(txs []model.Transaction, actionID int64, day time.Time) int {
	key := DayKey(day)
	n := 0
	for _, t := range txs {
		if t.Deleted || t.SourceType != model.SourceAction || t.SourceID != actionID {
			continue
		}
		if DayKey(t.Date) == key {
			n++
		}
	}
	return n
}

// CountActionInMonth counts the non-deleted action-sourced transactions
// for the given action dated in the same calendar month as ref.
func CountActionInMonth(txs []model.Transaction, actionID int64, ref time.Time) int {
	key := MonthKey(ref)
	n := 0
	for _, t := range txs {
		if t.Deleted || t.SourceType != model.SourceAction || t.SourceID != actionID {
			continue
		}
		if MonthKey(t.Date) == key {
			n++
		}
	}
	return n
}

// LimitReached reports whether the action's daily or monthly usage cap
// is already met as of today. A nil limit means unlimited.
func LimitReached(a model.Action, txs []model.Transaction, today time.Time) bool {
	if a.DailyLimit != nil && CountActionOn(txs, a.ID, today) >= *a.DailyLimit {
		return true
	}
	if a.MonthlyLimit != nil && CountActionInMonth(txs, a.ID, today) >= *a.MonthlyLimit {
		return true
	}
	return false
}
