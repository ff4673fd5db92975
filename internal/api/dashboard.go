package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/store"
)

// DashboardHandler serves the aggregated dashboard metrics.
type DashboardHandler struct {
	DB *sql.DB
}

type expiryBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type dashboardResponse struct {
	TotalItems      int                   `json:"total_items"`
	LowStockAlerts  int                   `json:"low_stock_alerts"`
	ExpiringSoon    int                   `json:"expiring_soon"`
	PendingEntries  int                   `json:"pending_entries"`
	StockByCategory []model.CategoryStock `json:"stock_by_category"`
	ExpiryBuckets   []expiryBucket        `json:"expiry_buckets"`
}

// Metrics handles GET /api/dashboard.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalItems, err := store.CountStockItems(ctx, h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	lowStock, err := store.CountActiveAlerts(ctx, h.DB, model.AlertTypeLowStock)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	pending, err := store.CountEntries(ctx, h.DB, model.EntryStatusPending)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	byCategory, err := store.StockByCategory(ctx, h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	items, err := store.ListStock(ctx, h.DB, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	buckets, expiringSoon := expiryBuckets(items, time.Now())

	if byCategory == nil {
		byCategory = []model.CategoryStock{}
	}
	jsonResponse(w, http.StatusOK, dashboardResponse{
		TotalItems:      totalItems,
		LowStockAlerts:  lowStock,
		ExpiringSoon:    expiringSoon,
		PendingEntries:  pending,
		StockByCategory: byCategory,
		ExpiryBuckets:   buckets,
	})
}

// expiryBuckets groups items with an upcoming expiry date into the
// dashboard's timeline: today, tomorrow, within three days, a week or
// later. Already-expired items are not counted. The second return value
// is the number of items expiring within three days.
func expiryBuckets(items []model.StockItem, now time.Time) ([]expiryBucket, int) {
	buckets := []expiryBucket{
		{Label: "Today"},
		{Label: "Tomorrow"},
		{Label: "Within 3 Days"},
		{Label: "A Week or Later"},
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	soon := 0
	for i := range items {
		item := &items[i]
		if item.ExpiryDate == nil || item.Quantity <= 0 {
			continue
		}
		days := int(item.ExpiryDate.Sub(startOfDay).Hours() / 24)
		switch {
		case days < 0:
			continue
		case days == 0:
			buckets[0].Count++
		case days == 1:
			buckets[1].Count++
		case days <= 3:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
		if days <= 3 {
			soon++
		}
	}
	return buckets, soon
}
