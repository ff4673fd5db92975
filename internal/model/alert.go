package model

import "time"

// Alert represents an inventory condition that needs attention.
type Alert struct {
	ID          int64      `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	StockItemID *int64     `json:"stock_item_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// Alert types.
const (
	AlertTypeExpiry   = "expiry"
	AlertTypeLowStock = "low_stock"
	AlertTypeDamaged  = "damaged"
)

// Alert priorities.
const (
	AlertPriorityLow      = "low"
	AlertPriorityMedium   = "medium"
	AlertPriorityHigh     = "high"
	AlertPriorityCritical = "critical"
)

// Alert statuses.
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)
