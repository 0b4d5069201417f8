package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("bad day %q: %v", s, err)
	}
	return d
}

func TestTransactionRoundTrip(t *testing.T) {
	st := openTestStore(t)

	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.Local)
	id, err := st.AddTransaction(model.Transaction{
		CreatedAt:  created,
		Date:       mustDay(t, "2025-03-01"),
		Amount:     300,
		Kind:       model.KindEarn,
		SourceType: model.SourceAction,
		SourceID:   7,
		SourceName: "Morning run",
		Memo:       "5k",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if id == 0 {
		t.Fatal("AddTransaction returned id 0")
	}

	got, err := st.Transaction(id)
	if err != nil {
		t.Fatalf("Transaction(%d): %v", id, err)
	}
	if got.Amount != 300 || got.Kind != model.KindEarn || got.SourceID != 7 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if got.Date.Format("2006-01-02") != "2025-03-01" {
		t.Errorf("Date = %v", got.Date)
	}
	if got.Deleted || !got.DeletedAt.IsZero() {
		t.Errorf("fresh entry should not be deleted: %+v", got)
	}
}

func TestTombstoneSurvivesPut(t *testing.T) {
	st := openTestStore(t)

	id, err := st.AddTransaction(model.Transaction{
		CreatedAt:  time.Now(),
		Date:       mustDay(t, "2025-03-02"),
		Amount:     -500,
		Kind:       model.KindSpend,
		SourceType: model.SourcePayment,
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	tx, err := st.Transaction(id)
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	tx.Deleted = true
	tx.DeletedAt = time.Date(2025, 3, 3, 12, 0, 0, 0, time.Local)
	if err := st.PutTransaction(tx); err != nil {
		t.Fatalf("PutTransaction: %v", err)
	}

	got, err := st.Transaction(id)
	if err != nil {
		t.Fatalf("Transaction after put: %v", err)
	}
	if !got.Deleted {
		t.Error("tombstone flag lost")
	}
	if got.DeletedAt.IsZero() {
		t.Error("deletion timestamp lost")
	}
	if got.Amount != -500 {
		t.Errorf("amount changed across put: %d", got.Amount)
	}

	// The row must still come back from the full listing.
	all, err := st.Transactions()
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("want 1 row including tombstone, got %d", len(all))
	}
}

func TestPutRejectsMissingID(t *testing.T) {
	st := openTestStore(t)
	if err := st.PutTransaction(model.Transaction{Amount: 1}); err == nil {
		t.Error("PutTransaction with id 0 should fail")
	}
	if err := st.PutAction(model.Action{Name: "x"}); err == nil {
		t.Error("PutAction with id 0 should fail")
	}
	if err := st.PutGoal(model.Goal{Name: "x"}); err == nil {
		t.Error("PutGoal with id 0 should fail")
	}
}

func TestActionNilLimitStaysNil(t *testing.T) {
	st := openTestStore(t)

	two := 2
	id, err := st.AddAction(model.Action{
		Name:       "Stretch",
		Points:     50,
		DailyLimit: &two,
		Type:       model.ActionSimple,
		Active:     true,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("AddAction: %v", err)
	}

	got, err := st.Action(id)
	if err != nil {
		t.Fatalf("Action: %v", err)
	}
	if got.DailyLimit == nil || *got.DailyLimit != 2 {
		t.Errorf("DailyLimit = %v, want 2", got.DailyLimit)
	}
	if got.MonthlyLimit != nil {
		t.Errorf("MonthlyLimit = %v, want nil (unlimited)", *got.MonthlyLimit)
	}
	if !got.Active {
		t.Error("Active flag lost")
	}
}

func TestNotFound(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Transaction(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Transaction(99) err = %v, want ErrNotFound", err)
	}
	if _, err := st.Action(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Action(99) err = %v, want ErrNotFound", err)
	}
	if _, err := st.Goal(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Goal(99) err = %v, want ErrNotFound", err)
	}
}

func TestClearResetsIDs(t *testing.T) {
	st := openTestStore(t)

	// Clear on a fresh database must not fail.
	if err := st.Clear(CollectionTransactions); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := st.AddTransaction(model.Transaction{
			CreatedAt:  time.Now(),
			Date:       mustDay(t, "2025-03-01"),
			Amount:     100,
			Kind:       model.KindEarn,
			SourceType: model.SourceManual,
		}); err != nil {
			t.Fatalf("AddTransaction: %v", err)
		}
	}

	if err := st.Clear(CollectionTransactions); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	all, err := st.Transactions()
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("want empty after clear, got %d rows", len(all))
	}

	id, err := st.AddTransaction(model.Transaction{
		CreatedAt:  time.Now(),
		Date:       mustDay(t, "2025-03-02"),
		Amount:     100,
		Kind:       model.KindEarn,
		SourceType: model.SourceManual,
	})
	if err != nil {
		t.Fatalf("AddTransaction after clear: %v", err)
	}
	if id != 1 {
		t.Errorf("id after clear = %d, want 1", id)
	}

	if err := st.Clear("no_such_table"); err == nil {
		t.Error("Clear with unknown collection should fail")
	}
}
