package ledger

import (
	"testing"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

func actionTx(t *testing.T, day string, actionID int64) model.Transaction {
	t.Helper()
	tx := txOn(t, day, 100)
	tx.SourceType = model.SourceAction
	tx.SourceID = actionID
	return tx
}

func intp(n int) *int { return &n }

func TestCountAction(t *testing.T) {
	today := mustDay(t, "2025-03-15")
	txs := []model.Transaction{
		actionTx(t, "2025-03-15", 7),
		actionTx(t, "2025-03-15", 7),
		actionTx(t, "2025-03-01", 7),          // same month, other day
		actionTx(t, "2025-03-15", 8),          // other action
		deleted(actionTx(t, "2025-03-15", 7)), // tombstone
		txOn(t, "2025-03-15", 100),            // manual, no source
	}

	if got := CountActionOn(txs, 7, today); got != 2 {
		t.Fatalf("CountActionOn = %d, want 2", got)
	}
	if got := CountActionInMonth(txs, 7, today); got != 3 {
		t.Fatalf("CountActionInMonth = %d, want 3", got)
	}
}

func TestLimitReached(t *testing.T) {
	today := mustDay(t, "2025-03-15")
	txs := []model.Transaction{
		actionTx(t, "2025-03-15", 7),
		actionTx(t, "2025-03-14", 7),
		actionTx(t, "2025-03-13", 7),
	}

	cases := []struct {
		name   string
		action model.Action
		want   bool
	}{
		{"unlimited", model.Action{ID: 7}, false},
		{"daily remaining", model.Action{ID: 7, DailyLimit: intp(2)}, false},
		{"daily reached", model.Action{ID: 7, DailyLimit: intp(1)}, true},
		{"monthly remaining", model.Action{ID: 7, MonthlyLimit: intp(4)}, false},
		{"monthly reached", model.Action{ID: 7, MonthlyLimit: intp(3)}, true},
		{"other action untouched", model.Action{ID: 9, DailyLimit: intp(1)}, false},
	}
	for _, c := range cases {
		if got := LimitReached(c.action, txs, today); got != c.want {
			t.Fatalf("%s: LimitReached = %v, want %v", c.name, got, c.want)
		}
	}
}
