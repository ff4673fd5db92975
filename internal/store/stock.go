package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/emart/inventory/internal/model"
)

const stockColumns = `id, name, category, quantity, unit, location, supplier,
	batch_number, expiry_date, low_stock_threshold, created_at, updated_at, deleted_at`

// GetStockItem returns a stock item by ID.
func GetStockItem(ctx context.Context, db *sql.DB, id int64) (*model.StockItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stock_items WHERE id = ?`, id,
	)
	item, err := scanStockItem(row)
	if err != nil {
		return nil, fmt.Errorf("getting stock item: %w", err)
	}
	return item, nil
}

// FindStockItem returns the active stock item matching name and category,
// or nil when none exists.
func FindStockItem(ctx context.Context, db *sql.DB, name, category string) (*model.StockItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stock_items
		 WHERE name = ? AND category = ? AND deleted_at IS NULL`,
		name, category,
	)
	item, err := scanStockItem(row)
	if err != nil {
		return nil, fmt.Errorf("finding stock item: %w", err)
	}
	return item, nil
}

// ListStock returns all non-deleted stock items, optionally filtered by a
// case-insensitive search over name, category and supplier.
func ListStock(ctx context.Context, db *sql.DB, search string) ([]model.StockItem, error) {
	var rows *sql.Rows
	var err error

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		rows, err = db.QueryContext(ctx,
			`SELECT `+stockColumns+` FROM stock_items
			 WHERE deleted_at IS NULL
			   AND (LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(supplier) LIKE ?)
			 ORDER BY name`, pattern, pattern, pattern,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+stockColumns+` FROM stock_items
			 WHERE deleted_at IS NULL ORDER BY name`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing stock: %w", err)
	}
	defer rows.Close()

	var items []model.StockItem
	for rows.Next() {
		item, err := scanStockItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ApplyApprovedEntry materializes an approved entry into the stock ledger:
// the quantity is added to an existing item with the same name and category,
// or a new item is created, and a movement is recorded. Runs in a single
// transaction so a failure leaves no partial stock change.
func ApplyApprovedEntry(ctx context.Context, db *sql.DB, entry *model.Entry, quantity int, unit string, lowStockThreshold int) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM stock_items
		 WHERE name = ? AND category = ? AND deleted_at IS NULL`,
		entry.Name, entry.Category,
	).Scan(&itemID)

	switch {
	case err == sql.ErrNoRows:
		var expiry *time.Time
		if entry.ExpiryDate != "" {
			if t, perr := time.Parse("2006-01-02", entry.ExpiryDate); perr == nil {
				expiry = &t
			}
		}
		result, ierr := tx.ExecContext(ctx,
			`INSERT INTO stock_items (name, category, quantity, unit, location,
			     supplier, batch_number, expiry_date, low_stock_threshold)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.Name, entry.Category, quantity, unit, entry.Location,
			entry.Supplier, entry.BatchNumber, expiry, lowStockThreshold,
		)
		if ierr != nil {
			return 0, fmt.Errorf("creating stock item: %w", ierr)
		}
		itemID, ierr = result.LastInsertId()
		if ierr != nil {
			return 0, fmt.Errorf("getting stock item id: %w", ierr)
		}
	case err != nil:
		return 0, fmt.Errorf("finding stock item: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE stock_items
			 SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			quantity, itemID,
		)
		if err != nil {
			return 0, fmt.Errorf("updating stock quantity: %w", err)
		}
	}

	if quantity > 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO movements (stock_item_id, action, from_location, to_location, quantity, moved_by)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			itemID, model.MovementAdded, entry.Supplier, entry.Location, quantity, entry.ReviewedBy,
		)
		if err != nil {
			return 0, fmt.Errorf("recording movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing stock update: %w", err)
	}
	return itemID, nil
}

// ListMovements returns recorded movements, newest first, limited when
// limit > 0.
func ListMovements(ctx context.Context, db *sql.DB, limit int) ([]model.Movement, error) {
	query := `SELECT m.id, m.stock_item_id, m.action, m.from_location, m.to_location,
	       m.quantity, m.moved_by, m.moved_at, s.name AS item_name
	 FROM movements m
	 JOIN stock_items s ON s.id = m.stock_item_id
	 ORDER BY m.moved_at DESC, m.id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListItemMovements returns the movement history for a single stock item.
func ListItemMovements(ctx context.Context, db *sql.DB, itemID int64) ([]model.Movement, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.stock_item_id, m.action, m.from_location, m.to_location,
		        m.quantity, m.moved_by, m.moved_at, s.name AS item_name
		 FROM movements m
		 JOIN stock_items s ON s.id = m.stock_item_id
		 WHERE m.stock_item_id = ?
		 ORDER BY m.moved_at DESC, m.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item movements: %w", err)
	}
	defer rows.Close()

	return scanMovements(rows)
}

// CountStockItems returns the number of active stock items.
func CountStockItems(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stock_items WHERE deleted_at IS NULL`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting stock items: %w", err)
	}
	return count, nil
}

// StockByCategory returns total quantities grouped by category and location.
func StockByCategory(ctx context.Context, db *sql.DB) ([]model.CategoryStock, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT category, COALESCE(location, ''), SUM(quantity)
		 FROM stock_items WHERE deleted_at IS NULL
		 GROUP BY category, location
		 ORDER BY category, location`,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregating stock by category: %w", err)
	}
	defer rows.Close()

	var groups []model.CategoryStock
	for rows.Next() {
		var g model.CategoryStock
		if err := rows.Scan(&g.Category, &g.Location, &g.Quantity); err != nil {
			return nil, fmt.Errorf("scanning stock group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func scanStockItem(row *sql.Row) (*model.StockItem, error) {
	item := &model.StockItem{}
	var unit, location, supplier, batch sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity,
		&unit, &location, &supplier, &batch, &item.ExpiryDate,
		&item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item.Unit = unit.String
	item.Location = location.String
	item.Supplier = supplier.String
	item.BatchNumber = batch.String
	return item, nil
}

func scanStockItemRows(rows *sql.Rows) (*model.StockItem, error) {
	item := &model.StockItem{}
	var unit, location, supplier, batch sql.NullString
	err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity,
		&unit, &location, &supplier, &batch, &item.ExpiryDate,
		&item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning stock item: %w", err)
	}
	item.Unit = unit.String
	item.Location = location.String
	item.Supplier = supplier.String
	item.BatchNumber = batch.String
	return item, nil
}

func scanMovements(rows *sql.Rows) ([]model.Movement, error) {
	var movements []model.Movement
	for rows.Next() {
		var m model.Movement
		var from, to, movedBy sql.NullString
		if err := rows.Scan(&m.ID, &m.StockItemID, &m.Action, &from, &to,
			&m.Quantity, &movedBy, &m.MovedAt, &m.ItemName); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		m.FromLocation = from.String
		m.ToLocation = to.String
		m.MovedBy = movedBy.String
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
