package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    created_ts    TEXT NOT NULL,
    tx_date       TEXT NOT NULL,
    amount        INTEGER NOT NULL,
    kind          TEXT NOT NULL,
    source_type   TEXT NOT NULL,
    source_id     INTEGER,
    source_name   TEXT,
    memo          TEXT,
    is_deleted    INTEGER NOT NULL DEFAULT 0,
    deleted_ts    TEXT
);

CREATE TABLE IF NOT EXISTS actions (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    points        INTEGER NOT NULL DEFAULT 0,
    daily_limit   INTEGER,
    monthly_limit INTEGER,
    action_type   TEXT NOT NULL DEFAULT 'simple',
    is_active     INTEGER NOT NULL DEFAULT 1,
    sort_order    INTEGER NOT NULL DEFAULT 0,
    created_ts    TEXT,
    is_deleted    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS action_options (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    action_id     INTEGER NOT NULL,
    label         TEXT NOT NULL,
    points        INTEGER NOT NULL,
    sort_order    INTEGER NOT NULL DEFAULT 0,
    is_deleted    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS wishlist (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    target        INTEGER NOT NULL,
    sort_order    INTEGER NOT NULL DEFAULT 0,
    created_ts    TEXT,
    is_deleted    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_tx_date ON transactions(tx_date);
CREATE INDEX IF NOT EXISTS idx_tx_deleted ON transactions(is_deleted);
CREATE INDEX IF NOT EXISTS idx_tx_created ON transactions(created_ts);
CREATE INDEX IF NOT EXISTS idx_options_action ON action_options(action_id);
`
