// Package store provides the SQLite-backed ledger store: transactions,
// actions, action options, and wishlist goals. Rows are only ever
// logically deleted; the balance history depends on tombstones staying
// in storage.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned by the single-record getters when no row
// matches the id.
var ErrNotFound = errors.New("record not found")

const (
	dayLayout = "2006-01-02"
	tsLayout  = time.RFC3339
)

// Store wraps the ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the ledger database.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeTS(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(tsLayout)
}

func decodeTS(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, _ := time.Parse(tsLayout, s.String)
	return t.Local()
}

func decodeDay(s string) time.Time {
	t, _ := time.ParseInLocation(dayLayout, s, time.Local)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ---- transactions ----

const txColumns = `id, created_ts, tx_date, amount, kind, source_type, source_id, source_name, memo, is_deleted, deleted_ts`

func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	var created sql.NullString
	var day string
	var sourceID sql.NullInt64
	var sourceName, memo sql.NullString
	var isDeleted int
	var deletedTS sql.NullString

	err := row.Scan(&t.ID, &created, &day, &t.Amount, &t.Kind, &t.SourceType,
		&sourceID, &sourceName, &memo, &isDeleted, &deletedTS)
	if err != nil {
		return t, err
	}

	t.CreatedAt = decodeTS(created)
	t.Date = decodeDay(day)
	t.SourceID = sourceID.Int64
	t.SourceName = sourceName.String
	t.Memo = memo.String
	t.Deleted = isDeleted != 0
	t.DeletedAt = decodeTS(deletedTS)
	return t, nil
}

// Transactions returns every transaction, tombstones included.
func (s *Store) Transactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`SELECT ` + txColumns + ` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Transaction returns a single transaction by id.
func (s *Store) Transaction(id int64) (model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return t, err
}

func txArgs(t model.Transaction) []any {
	var sourceID any
	if t.SourceID != 0 {
		sourceID = t.SourceID
	}
	return []any{
		encodeTS(t.CreatedAt), t.Date.Format(dayLayout), t.Amount, t.Kind,
		t.SourceType, sourceID, t.SourceName, t.Memo,
		boolToInt(t.Deleted), encodeTS(t.DeletedAt),
	}
}

// AddTransaction inserts a transaction with a fresh id and returns it.
func (s *Store) AddTransaction(t model.Transaction) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO transactions
		(created_ts, tx_date, amount, kind, source_type, source_id, source_name, memo, is_deleted, deleted_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, txArgs(t)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// PutTransaction upserts a transaction by id, preserving the id.
func (s *Store) PutTransaction(t model.Transaction) error {
	if t.ID == 0 {
		return errors.New("put transaction: missing id")
	}
	args := append([]any{t.ID}, txArgs(t)...)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO transactions
		(id, created_ts, tx_date, amount, kind, source_type, source_id, source_name, memo, is_deleted, deleted_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return err
}

// ---- actions ----

const actionColumns = `id, name, points, daily_limit, monthly_limit, action_type, is_active, sort_order, created_ts, is_deleted`

func scanAction(row interface{ Scan(...any) error }) (model.Action, error) {
	var a model.Action
	var daily, monthly sql.NullInt64
	var isActive, isDeleted int
	var created sql.NullString

	err := row.Scan(&a.ID, &a.Name, &a.Points, &daily, &monthly, &a.Type,
		&isActive, &a.SortOrder, &created, &isDeleted)
	if err != nil {
		return a, err
	}

	if daily.Valid {
		v := int(daily.Int64)
		a.DailyLimit = &v
	}
	if monthly.Valid {
		v := int(monthly.Int64)
		a.MonthlyLimit = &v
	}
	a.Active = isActive != 0
	a.CreatedAt = decodeTS(created)
	a.Deleted = isDeleted != 0
	return a, nil
}

// Actions returns every action, tombstones included, in sort order.
func (s *Store) Actions() ([]model.Action, error) {
	rows, err := s.db.Query(`SELECT ` + actionColumns + ` FROM actions ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Action returns a single action by id.
func (s *Store) Action(id int64) (model.Action, error) {
	row := s.db.QueryRow(`SELECT `+actionColumns+` FROM actions WHERE id = ?`, id)
	a, err := scanAction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, fmt.Errorf("action %d: %w", id, ErrNotFound)
	}
	return a, err
}

func actionArgs(a model.Action) []any {
	var daily, monthly any
	if a.DailyLimit != nil {
		daily = *a.DailyLimit
	}
	if a.MonthlyLimit != nil {
		monthly = *a.MonthlyLimit
	}
	return []any{
		a.Name, a.Points, daily, monthly, a.Type,
		boolToInt(a.Active), a.SortOrder, encodeTS(a.CreatedAt), boolToInt(a.Deleted),
	}
}

// AddAction inserts an action with a fresh id and returns it.
func (s *Store) AddAction(a model.Action) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO actions
		(name, points, daily_limit, monthly_limit, action_type, is_active, sort_order, created_ts, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, actionArgs(a)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// PutAction upserts an action by id.
func (s *Store) PutAction(a model.Action) error {
	if a.ID == 0 {
		return errors.New("put action: missing id")
	}
	args := append([]any{a.ID}, actionArgs(a)...)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO actions
		(id, name, points, daily_limit, monthly_limit, action_type, is_active, sort_order, created_ts, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return err
}

// ---- action options ----

// ActionOptions returns every action option, tombstones included.
func (s *Store) ActionOptions() ([]model.ActionOption, error) {
	rows, err := s.db.Query(`SELECT id, action_id, label, points, sort_order, is_deleted
		FROM action_options ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ActionOption
	for rows.Next() {
		var o model.ActionOption
		var isDeleted int
		if err := rows.Scan(&o.ID, &o.ActionID, &o.Label, &o.Points, &o.SortOrder, &isDeleted); err != nil {
			return nil, err
		}
		o.Deleted = isDeleted != 0
		out = append(out, o)
	}
	return out, rows.Err()
}

// AddActionOption inserts an option with a fresh id and returns it.
func (s *Store) AddActionOption(o model.ActionOption) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO action_options (action_id, label, points, sort_order, is_deleted)
		VALUES (?, ?, ?, ?, ?)`, o.ActionID, o.Label, o.Points, o.SortOrder, boolToInt(o.Deleted))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// PutActionOption upserts an option by id.
func (s *Store) PutActionOption(o model.ActionOption) error {
	if o.ID == 0 {
		return errors.New("put action option: missing id")
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO action_options
		(id, action_id, label, points, sort_order, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.ActionID, o.Label, o.Points, o.SortOrder, boolToInt(o.Deleted))
	return err
}

// ---- wishlist ----

// Goals returns every wishlist goal, tombstones included.
func (s *Store) Goals() ([]model.Goal, error) {
	rows, err := s.db.Query(`SELECT id, name, target, sort_order, created_ts, is_deleted
		FROM wishlist ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Goal
	for rows.Next() {
		var g model.Goal
		var created sql.NullString
		var isDeleted int
		if err := rows.Scan(&g.ID, &g.Name, &g.Target, &g.SortOrder, &created, &isDeleted); err != nil {
			return nil, err
		}
		g.CreatedAt = decodeTS(created)
		g.Deleted = isDeleted != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

// Goal returns a single wishlist goal by id.
func (s *Store) Goal(id int64) (model.Goal, error) {
	row := s.db.QueryRow(`SELECT id, name, target, sort_order, created_ts, is_deleted
		FROM wishlist WHERE id = ?`, id)
	var g model.Goal
	var created sql.NullString
	var isDeleted int
	err := row.Scan(&g.ID, &g.Name, &g.Target, &g.SortOrder, &created, &isDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return g, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return g, err
	}
	g.CreatedAt = decodeTS(created)
	g.Deleted = isDeleted != 0
	return g, nil
}

// AddGoal inserts a goal with a fresh id and returns it.
func (s *Store) AddGoal(g model.Goal) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO wishlist (name, target, sort_order, created_ts, is_deleted)
		VALUES (?, ?, ?, ?, ?)`, g.Name, g.Target, g.SortOrder, encodeTS(g.CreatedAt), boolToInt(g.Deleted))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// PutGoal upserts a goal by id.
func (s *Store) PutGoal(g model.Goal) error {
	if g.ID == 0 {
		return errors.New("put goal: missing id")
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO wishlist
		(id, name, target, sort_order, created_ts, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Target, g.SortOrder, encodeTS(g.CreatedAt), boolToInt(g.Deleted))
	return err
}

// ---- restore support ----

// Collection names accepted by Clear.
const (
	CollectionTransactions  = "transactions"
	CollectionActions       = "actions"
	CollectionActionOptions = "action_options"
	CollectionWishlist      = "wishlist"
)

// Clear removes every row of a collection. Used only during a full
// restore; normal deletion is logical.
func (s *Store) Clear(collection string) error {
	switch collection {
	case CollectionTransactions, CollectionActions, CollectionActionOptions, CollectionWishlist:
	default:
		return fmt.Errorf("clear: unknown collection %q", collection)
	}
	if _, err := s.db.Exec(`DELETE FROM ` + collection); err != nil {
		return err
	}
	// Keep fresh ids monotonic past the restored ones. sqlite_sequence
	// only exists once an AUTOINCREMENT table has seen an insert.
	_, _ = s.db.Exec(`DELETE FROM sqlite_sequence WHERE name = ?`, collection)
	return nil
}
