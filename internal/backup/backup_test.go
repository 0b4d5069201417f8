package backup

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
	"github.com/nagaosooooooora-dev/roman-points/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("bad day %q: %v", s, err)
	}
	return d
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	two := 2
	actionID, err := src.AddAction(model.Action{
		Name: "Morning run", Points: 300, DailyLimit: &two,
		Type: model.ActionSimple, Active: true, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("AddAction: %v", err)
	}
	if _, err := src.AddTransaction(model.Transaction{
		CreatedAt: now, Date: day(t, "2025-05-30"), Amount: 300,
		Kind: model.KindEarn, SourceType: model.SourceAction,
		SourceID: actionID, SourceName: "Morning run",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	// A tombstoned spend must survive the round trip.
	spendID, err := src.AddTransaction(model.Transaction{
		CreatedAt: now, Date: day(t, "2025-05-31"), Amount: -1200,
		Kind: model.KindSpend, SourceType: model.SourcePayment, Memo: "book",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	spend, err := src.Transaction(spendID)
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	spend.Deleted = true
	spend.DeletedAt = now
	if err := src.PutTransaction(spend); err != nil {
		t.Fatalf("PutTransaction: %v", err)
	}
	if _, err := src.AddGoal(model.Goal{Name: "New bike", Target: 60000, CreatedAt: now}); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	var buf bytes.Buffer
	if err := Export(src, &buf, now); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), `"version": 1`) {
		t.Error("export should carry the format version")
	}

	dst := openTestStore(t)
	counts, err := Import(dst, bytes.NewReader(buf.Bytes()), now)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if counts.Transactions != 2 || counts.Actions != 1 || counts.Wishlist != 1 {
		t.Errorf("counts = %+v", counts)
	}

	txs, err := dst.Transactions()
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("restored %d transactions, want 2", len(txs))
	}
	var restored model.Transaction
	for _, tx := range txs {
		if tx.Amount == -1200 {
			restored = tx
		}
	}
	if !restored.Deleted || restored.DeletedAt.IsZero() {
		t.Errorf("tombstone not preserved: %+v", restored)
	}

	actions, err := dst.Actions()
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	if len(actions) != 1 || actions[0].Name != "Morning run" {
		t.Fatalf("restored actions: %+v", actions)
	}
	if actions[0].DailyLimit == nil || *actions[0].DailyLimit != 2 {
		t.Errorf("daily limit not preserved: %v", actions[0].DailyLimit)
	}
	if actions[0].MonthlyLimit != nil {
		t.Errorf("monthly limit should stay unlimited, got %v", *actions[0].MonthlyLimit)
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	st := openTestStore(t)
	now := time.Now()

	if _, err := st.AddTransaction(model.Transaction{
		CreatedAt: now, Date: day(t, "2025-01-01"), Amount: 999,
		Kind: model.KindEarn, SourceType: model.SourceManual, Memo: "pre-existing",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	payload := `{
		"version": 1,
		"exported_at": "2025-06-01T00:00:00Z",
		"actions": [],
		"transactions": [{"id": 5, "amount": -250, "tx_date": "2025-05-01"}]
	}`
	counts, err := Import(st, strings.NewReader(payload), now)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if counts.Transactions != 1 {
		t.Errorf("counts.Transactions = %d, want 1", counts.Transactions)
	}

	txs, err := st.Transactions()
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("import should replace, not append: %d rows", len(txs))
	}
	if txs[0].ID != 5 || txs[0].Amount != -250 {
		t.Errorf("restored entry: %+v", txs[0])
	}
	if txs[0].Kind != model.KindSpend {
		t.Errorf("kind should default from the amount sign, got %q", txs[0].Kind)
	}
}

func TestImportRejectsMalformedFileUntouched(t *testing.T) {
	st := openTestStore(t)
	now := time.Now()

	if _, err := st.AddTransaction(model.Transaction{
		CreatedAt: now, Date: day(t, "2025-01-01"), Amount: 100,
		Kind: model.KindEarn, SourceType: model.SourceManual,
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if _, err := Import(st, strings.NewReader(`{"version": 1, "transactions": [`), now); err == nil {
		t.Fatal("malformed JSON should fail")
	}
	if _, err := Import(st, strings.NewReader(`{"version": 99}`), now); err == nil {
		t.Fatal("unknown version should fail")
	}

	// Existing data must be untouched after failed imports.
	txs, err := st.Transactions()
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Amount != 100 {
		t.Fatalf("store modified by failed import: %+v", txs)
	}
}
