package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emart/inventory/internal/model"
)

// CreateAlert inserts a new alert.
func CreateAlert(ctx context.Context, db *sql.DB, a *model.Alert) (*model.Alert, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO alerts (type, title, message, priority, status, stock_item_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Type, a.Title, a.Message, a.Priority, model.AlertStatusActive, a.StockItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting alert id: %w", err)
	}

	return GetAlert(ctx, db, id)
}

// GetAlert returns an alert by ID.
func GetAlert(ctx context.Context, db *sql.DB, id int64) (*model.Alert, error) {
	a := &model.Alert{}
	err := db.QueryRowContext(ctx,
		`SELECT id, type, title, message, priority, status, stock_item_id, created_at, resolved_at
		 FROM alerts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Priority, &a.Status,
		&a.StockItemID, &a.CreatedAt, &a.ResolvedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting alert: %w", err)
	}
	return a, nil
}

// ListAlerts returns alerts, optionally filtered by status, newest first.
func ListAlerts(ctx context.Context, db *sql.DB, status string) ([]model.Alert, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, type, title, message, priority, status, stock_item_id, created_at, resolved_at
			 FROM alerts WHERE status = ? ORDER BY created_at DESC, id DESC`, status,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, type, title, message, priority, status, stock_item_id, created_at, resolved_at
			 FROM alerts ORDER BY created_at DESC, id DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Priority,
			&a.Status, &a.StockItemID, &a.CreatedAt, &a.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ResolveAlert marks an active alert resolved. Reports whether the alert
// was active.
func ResolveAlert(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE alerts SET status = ?, resolved_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		model.AlertStatusResolved, id, model.AlertStatusActive,
	)
	if err != nil {
		return false, fmt.Errorf("resolving alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking resolve result: %w", err)
	}
	return affected == 1, nil
}

// HasActiveAlert reports whether an active alert of the given type already
// exists for the stock item.
func HasActiveAlert(ctx context.Context, db *sql.DB, alertType string, stockItemID int64) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts
		 WHERE type = ? AND stock_item_id = ? AND status = ?`,
		alertType, stockItemID, model.AlertStatusActive,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking active alert: %w", err)
	}
	return count > 0, nil
}

// CountActiveAlerts returns the number of active alerts, optionally limited
// to one type.
func CountActiveAlerts(ctx context.Context, db *sql.DB, alertType string) (int, error) {
	var count int
	var err error
	if alertType != "" {
		err = db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM alerts WHERE status = ? AND type = ?`,
			model.AlertStatusActive, alertType,
		).Scan(&count)
	} else {
		err = db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM alerts WHERE status = ?`,
			model.AlertStatusActive,
		).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting active alerts: %w", err)
	}
	return count, nil
}
