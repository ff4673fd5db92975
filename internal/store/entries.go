package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emart/inventory/internal/model"
)

const entryColumns = `id, ref, name, category, quantity, location, supplier,
	expiry_date, batch_number, cost_price, selling_price, description,
	status, submitted_by, submitted_at, reviewed_by, reviewed_at`

// CreateEntry inserts a new workflow entry with the given initial status.
func CreateEntry(ctx context.Context, db *sql.DB, e *model.Entry) (*model.Entry, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO entries (ref, name, category, quantity, location, supplier,
		     expiry_date, batch_number, cost_price, selling_price, description,
		     status, submitted_by, reviewed_by, reviewed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Ref, e.Name, e.Category, e.Quantity, e.Location, e.Supplier,
		e.ExpiryDate, e.BatchNumber, e.CostPrice, e.SellingPrice, e.Description,
		e.Status, e.SubmittedBy, nullString(e.ReviewedBy), e.ReviewedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting entry id: %w", err)
	}

	return GetEntry(ctx, db, id)
}

// GetEntry returns an entry by ID.
func GetEntry(ctx context.Context, db *sql.DB, id int64) (*model.Entry, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id,
	)
	return scanEntry(row)
}

// ListEntries returns entries, optionally filtered by status, newest first.
func ListEntries(ctx context.Context, db *sql.DB, status string) ([]model.Entry, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT `+entryColumns+` FROM entries WHERE status = ?
			 ORDER BY submitted_at DESC, id DESC`, status,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+entryColumns+` FROM entries
			 ORDER BY submitted_at DESC, id DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListPendingEntries returns pending entries ordered by submission time
// ascending (oldest first), the order checkers review in.
func ListPendingEntries(ctx context.Context, db *sql.DB) ([]model.Entry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE status = ?
		 ORDER BY submitted_at ASC, id ASC`, model.EntryStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ReviewEntry moves a pending entry to a terminal status. The update is
// conditional on the current status so exactly one terminal transition can
// ever succeed; it reports whether this call won that transition.
func ReviewEntry(ctx context.Context, db *sql.DB, id int64, status, reviewedBy string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE entries
		 SET status = ?, reviewed_by = ?, reviewed_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		status, reviewedBy, id, model.EntryStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("reviewing entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking review result: %w", err)
	}
	return affected == 1, nil
}

// CountEntries returns the number of entries with the given status.
func CountEntries(ctx context.Context, db *sql.DB, status string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE status = ?`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

func scanEntry(row *sql.Row) (*model.Entry, error) {
	e := &model.Entry{}
	var location, supplier, expiry, batch, cost, selling, desc, reviewedBy sql.NullString
	err := row.Scan(&e.ID, &e.Ref, &e.Name, &e.Category, &e.Quantity,
		&location, &supplier, &expiry, &batch, &cost, &selling, &desc,
		&e.Status, &e.SubmittedBy, &e.SubmittedAt, &reviewedBy, &e.ReviewedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry: %w", err)
	}
	e.Location = location.String
	e.Supplier = supplier.String
	e.ExpiryDate = expiry.String
	e.BatchNumber = batch.String
	e.CostPrice = cost.String
	e.SellingPrice = selling.String
	e.Description = desc.String
	e.ReviewedBy = reviewedBy.String
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]model.Entry, error) {
	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var location, supplier, expiry, batch, cost, selling, desc, reviewedBy sql.NullString
		if err := rows.Scan(&e.ID, &e.Ref, &e.Name, &e.Category, &e.Quantity,
			&location, &supplier, &expiry, &batch, &cost, &selling, &desc,
			&e.Status, &e.SubmittedBy, &e.SubmittedAt, &reviewedBy, &e.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Location = location.String
		e.Supplier = supplier.String
		e.ExpiryDate = expiry.String
		e.BatchNumber = batch.String
		e.CostPrice = cost.String
		e.SellingPrice = selling.String
		e.Description = desc.String
		e.ReviewedBy = reviewedBy.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
