package model

import "time"

// StockItem represents live inventory: an approved quantity of goods at a
// location. Quantity is numeric; Unit keeps the free-text unit from the
// originating entry ("kg", "liters", "units").
type StockItem struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Quantity          int        `json:"quantity"`
	Unit              string     `json:"unit,omitempty"`
	Location          string     `json:"location,omitempty"`
	Supplier          string     `json:"supplier,omitempty"`
	BatchNumber       string     `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	LowStockThreshold int        `json:"low_stock_threshold"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// Stock statuses, derived from quantity and threshold.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Status derives the stock status from the current quantity.
func (s *StockItem) Status() string {
	return StockStatus(s.Quantity, s.LowStockThreshold)
}

// StockStatus derives a stock status from a quantity and low-stock threshold.
func StockStatus(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Movement represents a recorded stock change.
type Movement struct {
	ID           int64     `json:"id"`
	StockItemID  int64     `json:"stock_item_id"`
	Action       string    `json:"action"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Quantity     int       `json:"quantity"`
	MovedBy      string    `json:"moved_by,omitempty"`
	MovedAt      time.Time `json:"moved_at"`

	// Joined field (not always populated).
	ItemName string `json:"item_name,omitempty"`
}

// Movement actions.
const (
	MovementAdded   = "added"
	MovementMoved   = "moved"
	MovementRemoved = "removed"
)

// CategoryStock is an aggregate row: total quantity per category/location.
type CategoryStock struct {
	Category string `json:"category"`
	Location string `json:"location"`
	Quantity int    `json:"quantity"`
}
