package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: movements need a stock item index for per-item history.
	`CREATE INDEX IF NOT EXISTS idx_movements_stock_item
	     ON movements(stock_item_id, moved_at)`,
	// Migration 2: active alert lookups scan by status and type.
	`CREATE INDEX IF NOT EXISTS idx_alerts_status_type
	     ON alerts(status, type)`,
}

// Migrate ensures the schema exists and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
