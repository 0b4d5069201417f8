// Package backup implements the versioned JSON backup format: export of
// the full ledger and all-or-nothing restore. The format is tolerant of
// missing fields so files written by earlier schema versions (which
// lacked action_options and wishlist) still restore cleanly.
package backup

import "time"

// Version is the current backup format version.
const Version = 1

// Payload is the top-level backup file structure.
type Payload struct {
	Version       int                 `json:"version"`
	ExportedAt    string              `json:"exported_at"`
	Actions       []ActionRecord      `json:"actions"`
	Transactions  []TransactionRecord `json:"transactions"`
	ActionOptions []OptionRecord      `json:"action_options,omitempty"`
	Wishlist      []GoalRecord        `json:"wishlist,omitempty"`
}

// TransactionRecord is the wire form of a ledger transaction. Pointer
// fields distinguish absent from zero so normalization can default them.
type TransactionRecord struct {
	ID         int64   `json:"id"`
	CreatedTS  *int64  `json:"created_ts"` // unix milliseconds
	TxDate     *string `json:"tx_date"`    // "2006-01-02"
	Amount     *int64  `json:"amount"`
	Kind       *string `json:"kind"`
	SourceType *string `json:"source_type"`
	SourceID   *int64  `json:"source_id"`
	SourceName *string `json:"source_name"`
	Memo       *string `json:"memo"`
	IsDeleted  *bool   `json:"is_deleted"`
	DeletedTS  *int64  `json:"deleted_ts"`
}

// ActionRecord is the wire form of an action.
type ActionRecord struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name"`
	Points       *int64  `json:"points"`
	DailyLimit   *int    `json:"daily_limit"`
	MonthlyLimit *int    `json:"monthly_limit"`
	ActionType   *string `json:"action_type"`
	IsActive     *bool   `json:"is_active"`
	SortOrder    *int    `json:"sort_order"`
	CreatedTS    *int64  `json:"created_ts"`
	IsDeleted    *bool   `json:"is_deleted"`
}

// OptionRecord is the wire form of an action option.
type OptionRecord struct {
	ID        int64   `json:"id"`
	ActionID  *int64  `json:"action_id"`
	Label     *string `json:"label"`
	Points    *int64  `json:"points"`
	SortOrder *int    `json:"sort_order"`
	IsDeleted *bool   `json:"is_deleted"`
}

// GoalRecord is the wire form of a wishlist goal.
type GoalRecord struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name"`
	Target    *int64  `json:"target"`
	SortOrder *int    `json:"sort_order"`
	CreatedTS *int64  `json:"created_ts"`
	IsDeleted *bool   `json:"is_deleted"`
}

func millis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms *int64, fallback time.Time) time.Time {
	if ms == nil {
		return fallback
	}
	return time.UnixMilli(*ms).Local()
}
