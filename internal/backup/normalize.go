package backup

import (
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

// Normalization lives in exactly one place: these functions turn a
// loosely shaped wire record into a canonical model value, applying
// the documented defaults for anything missing.

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func i64Or(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// NormalizeTransaction converts a wire transaction, defaulting: amount
// 0, date = now's day, kind from the amount sign, source manual,
// created at import time, not deleted.
func NormalizeTransaction(r TransactionRecord, now time.Time) model.Transaction {
	amount := i64Or(r.Amount, 0)

	date := ledger.Day(now)
	if r.TxDate != nil {
		if d, err := ledger.ParseDay(*r.TxDate); err == nil {
			date = d
		}
	}

	t := model.Transaction{
		ID:         r.ID,
		CreatedAt:  fromMillis(r.CreatedTS, now),
		Date:       date,
		Amount:     amount,
		Kind:       strOr(r.Kind, model.KindForAmount(amount)),
		SourceType: strOr(r.SourceType, model.SourceManual),
		SourceID:   i64Or(r.SourceID, 0),
		SourceName: strOr(r.SourceName, ""),
		Memo:       strOr(r.Memo, ""),
		Deleted:    boolOr(r.IsDeleted, false),
	}
	if t.Deleted {
		t.DeletedAt = fromMillis(r.DeletedTS, now)
	}
	return t
}

// NormalizeAction converts a wire action, defaulting: empty name, 0
// points, unlimited caps, simple type, active, created at import time.
func NormalizeAction(r ActionRecord, now time.Time) model.Action {
	return model.Action{
		ID:           r.ID,
		Name:         strOr(r.Name, ""),
		Points:       i64Or(r.Points, 0),
		DailyLimit:   r.DailyLimit,
		MonthlyLimit: r.MonthlyLimit,
		Type:         strOr(r.ActionType, model.ActionSimple),
		Active:       boolOr(r.IsActive, true),
		SortOrder:    intOr(r.SortOrder, 0),
		CreatedAt:    fromMillis(r.CreatedTS, now),
		Deleted:      boolOr(r.IsDeleted, false),
	}
}

// NormalizeOption converts a wire action option.
func NormalizeOption(r OptionRecord) model.ActionOption {
	return model.ActionOption{
		ID:        r.ID,
		ActionID:  i64Or(r.ActionID, 0),
		Label:     strOr(r.Label, ""),
		Points:    i64Or(r.Points, 0),
		SortOrder: intOr(r.SortOrder, 0),
		Deleted:   boolOr(r.IsDeleted, false),
	}
}

// NormalizeGoal converts a wire wishlist goal.
func NormalizeGoal(r GoalRecord, now time.Time) model.Goal {
	return model.Goal{
		ID:        r.ID,
		Name:      strOr(r.Name, ""),
		Target:    i64Or(r.Target, 0),
		SortOrder: intOr(r.SortOrder, 0),
		CreatedAt: fromMillis(r.CreatedTS, now),
		Deleted:   boolOr(r.IsDeleted, false),
	}
}

func transactionRecord(t model.Transaction) TransactionRecord {
	date := ledger.DayKey(t.Date)
	r := TransactionRecord{
		ID:         t.ID,
		CreatedTS:  millis(t.CreatedAt),
		TxDate:     &date,
		Amount:     &t.Amount,
		Kind:       &t.Kind,
		SourceType: &t.SourceType,
		SourceName: &t.SourceName,
		Memo:       &t.Memo,
		IsDeleted:  &t.Deleted,
		DeletedTS:  millis(t.DeletedAt),
	}
	if t.SourceID != 0 {
		r.SourceID = &t.SourceID
	}
	return r
}

func actionRecord(a model.Action) ActionRecord {
	return ActionRecord{
		ID:           a.ID,
		Name:         &a.Name,
		Points:       &a.Points,
		DailyLimit:   a.DailyLimit,
		MonthlyLimit: a.MonthlyLimit,
		ActionType:   &a.Type,
		IsActive:     &a.Active,
		SortOrder:    &a.SortOrder,
		CreatedTS:    millis(a.CreatedAt),
		IsDeleted:    &a.Deleted,
	}
}

func optionRecord(o model.ActionOption) OptionRecord {
	return OptionRecord{
		ID:        o.ID,
		ActionID:  &o.ActionID,
		Label:     &o.Label,
		Points:    &o.Points,
		SortOrder: &o.SortOrder,
		IsDeleted: &o.Deleted,
	}
}

func goalRecord(g model.Goal) GoalRecord {
	return GoalRecord{
		ID:        g.ID,
		Name:      &g.Name,
		Target:    &g.Target,
		SortOrder: &g.SortOrder,
		CreatedTS: millis(g.CreatedAt),
		IsDeleted: &g.Deleted,
	}
}
