package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'maker' CHECK (role IN ('admin', 'maker', 'checker')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS entries (
    id            INTEGER PRIMARY KEY,
    ref           TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL,
    quantity      TEXT NOT NULL,
    location      TEXT,
    supplier      TEXT,
    expiry_date   TEXT,
    batch_number  TEXT,
    cost_price    TEXT,
    selling_price TEXT,
    description   TEXT,
    status        TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
    submitted_by  TEXT NOT NULL,
    submitted_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    reviewed_by   TEXT,
    reviewed_at   DATETIME
);

CREATE INDEX IF NOT EXISTS idx_entries_status
    ON entries(status, submitted_at);

CREATE TABLE IF NOT EXISTS stock_items (
    id                  INTEGER PRIMARY KEY,
    name                TEXT NOT NULL,
    category            TEXT NOT NULL,
    quantity            INTEGER NOT NULL DEFAULT 0,
    unit                TEXT,
    location            TEXT,
    supplier            TEXT,
    batch_number        TEXT,
    expiry_date         DATETIME,
    low_stock_threshold INTEGER NOT NULL DEFAULT 10,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at          DATETIME
);

CREATE TABLE IF NOT EXISTS movements (
    id            INTEGER PRIMARY KEY,
    stock_item_id INTEGER NOT NULL REFERENCES stock_items(id),
    action        TEXT NOT NULL CHECK (action IN ('added', 'moved', 'removed')),
    from_location TEXT,
    to_location   TEXT,
    quantity      INTEGER NOT NULL CHECK (quantity > 0),
    moved_by      TEXT,
    moved_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS alerts (
    id            INTEGER PRIMARY KEY,
    type          TEXT NOT NULL CHECK (type IN ('expiry', 'low_stock', 'damaged')),
    title         TEXT NOT NULL,
    message       TEXT NOT NULL,
    priority      TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high', 'critical')),
    status        TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'resolved')),
    stock_item_id INTEGER REFERENCES stock_items(id),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    resolved_at   DATETIME
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
