package backup

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

func TestNormalizeTransaction_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.Local)

	// A bare record from an old backup: only id and amount.
	var rec TransactionRecord
	if err := json.Unmarshal([]byte(`{"id": 3, "amount": -250}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tx := NormalizeTransaction(rec, now)
	if tx.ID != 3 || tx.Amount != -250 {
		t.Fatalf("id/amount = %d/%d, want 3/-250", tx.ID, tx.Amount)
	}
	if tx.Kind != model.KindSpend {
		t.Fatalf("Kind = %q, want spend (derived from sign)", tx.Kind)
	}
	if tx.SourceType != model.SourceManual {
		t.Fatalf("SourceType = %q, want manual", tx.SourceType)
	}
	if got := tx.Date.Format("2006-01-02"); got != "2025-03-15" {
		t.Fatalf("Date = %s, want import day", got)
	}
	if !tx.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %s, want import time", tx.CreatedAt)
	}
	if tx.Deleted {
		t.Fatal("Deleted = true, want false by default")
	}
}

func TestNormalizeTransaction_KeepsExplicitFields(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	raw := `{"id": 9, "created_ts": 1735689600000, "tx_date": "2025-01-01",
		"amount": 100, "kind": "earn", "source_type": "action", "source_id": 4,
		"source_name": "Cooking", "memo": "dinner", "is_deleted": true, "deleted_ts": 1735776000000}`

	var rec TransactionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tx := NormalizeTransaction(rec, now)
	if got := tx.Date.Format("2006-01-02"); got != "2025-01-01" {
		t.Fatalf("Date = %s, want 2025-01-01", got)
	}
	if tx.SourceType != model.SourceAction || tx.SourceID != 4 {
		t.Fatalf("source = %s/%d, want action/4", tx.SourceType, tx.SourceID)
	}
	if !tx.Deleted || tx.DeletedAt.IsZero() {
		t.Fatalf("tombstone not preserved: Deleted=%v DeletedAt=%s", tx.Deleted, tx.DeletedAt)
	}
	if tx.Memo != "dinner" || tx.SourceName != "Cooking" {
		t.Fatalf("memo/name = %q/%q", tx.Memo, tx.SourceName)
	}
}

func TestNormalizeAction_Defaults(t *testing.T) {
	now := time.Now()
	var rec ActionRecord
	if err := json.Unmarshal([]byte(`{"id": 1, "name": "Dishes", "points": 300}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	a := NormalizeAction(rec, now)
	if !a.Active {
		t.Fatal("Active = false, want true by default")
	}
	if a.Type != model.ActionSimple {
		t.Fatalf("Type = %q, want simple", a.Type)
	}
	if a.DailyLimit != nil || a.MonthlyLimit != nil {
		t.Fatal("limits set, want unlimited (nil)")
	}
}

func TestNormalizeAction_NullLimitIsUnlimited(t *testing.T) {
	var rec ActionRecord
	raw := `{"id": 2, "name": "Walk", "points": 100, "daily_limit": null, "monthly_limit": 10}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	a := NormalizeAction(rec, time.Now())
	if a.DailyLimit != nil {
		t.Fatalf("DailyLimit = %v, want nil", *a.DailyLimit)
	}
	if a.MonthlyLimit == nil || *a.MonthlyLimit != 10 {
		t.Fatalf("MonthlyLimit = %v, want 10", a.MonthlyLimit)
	}
}

func TestPayload_OldFileWithoutNewCollections(t *testing.T) {
	raw := `{"version": 1, "exported_at": "2024-06-01T00:00:00Z",
		"actions": [{"id": 1, "name": "Dishes", "points": 300}],
		"transactions": [{"id": 1, "amount": 300, "tx_date": "2024-05-31"}]}`

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Version != 1 {
		t.Fatalf("Version = %d, want 1", p.Version)
	}
	if len(p.ActionOptions) != 0 || len(p.Wishlist) != 0 {
		t.Fatal("missing collections should decode as empty")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	orig := model.Transaction{
		ID:         7,
		CreatedAt:  now,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		Amount:     -1200,
		Kind:       model.KindSpend,
		SourceType: model.SourcePayment,
		SourceName: "Payment",
		Memo:       "flowers",
	}

	got := NormalizeTransaction(transactionRecord(orig), now)
	if got.ID != orig.ID || got.Amount != orig.Amount || got.Memo != orig.Memo {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Date.Format("2006-01-02") != "2025-03-10" {
		t.Fatalf("Date = %s, want 2025-03-10", got.Date)
	}
}
