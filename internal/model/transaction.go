// Package model defines the domain types for the roman-points ledger.
package model

import "time"

// Transaction kinds. Derivable from the amount sign; stored for display.
const (
	KindEarn  = "earn"
	KindSpend = "spend"
)

// Transaction provenance tags.
const (
	SourceAction  = "action"
	SourcePayment = "payment"
	SourceManual  = "manual"
)

// Transaction is one point-affecting ledger entry. Rows are never
// physically removed; Deleted marks a tombstone that keeps the row in
// storage but excludes it from balances and forecasts.
type Transaction struct {
	ID         int64
	CreatedAt  time.Time
	Date       time.Time // calendar day the event is attributed to, user-editable
	Amount     int64     // positive = earn, negative = spend
	Kind       string
	SourceType string
	SourceID   int64 // weak reference to the originating Action, 0 = none
	SourceName string
	Memo       string
	Deleted    bool
	DeletedAt  time.Time // zero unless Deleted
}

// KindForAmount returns the transaction kind implied by the amount sign.
func KindForAmount(amount int64) string {
	if amount < 0 {
		return KindSpend
	}
	return KindEarn
}

// DisplayName returns the label shown in history rows.
func (t Transaction) DisplayName() string {
	if t.SourceType == SourcePayment {
		return "Payment"
	}
	if t.SourceName != "" {
		return t.SourceName
	}
	return "(unnamed)"
}
