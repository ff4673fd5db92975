package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/store"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := GetWebSession(r.Context())

	totalItems, err := store.CountStockItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to count stock for dashboard", "error", err)
	}
	lowStock, err := store.CountActiveAlerts(r.Context(), s.DB, model.AlertTypeLowStock)
	if err != nil {
		slog.Error("failed to count alerts for dashboard", "error", err)
	}
	pending, err := store.CountEntries(r.Context(), s.DB, model.EntryStatusPending)
	if err != nil {
		slog.Error("failed to count pending entries for dashboard", "error", err)
	}
	byCategory, err := store.StockByCategory(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to aggregate stock for dashboard", "error", err)
	}
	movements, err := store.ListMovements(r.Context(), s.DB, 10)
	if err != nil {
		slog.Error("failed to list movements for dashboard", "error", err)
	}
	items, err := store.ListStock(r.Context(), s.DB, "")
	if err != nil {
		slog.Error("failed to list stock for dashboard", "error", err)
	}

	expiringSoon := 0
	cutoff := time.Now().Add(alerts.ExpirySoonWindow)
	for i := range items {
		item := &items[i]
		if item.ExpiryDate != nil && item.Quantity > 0 && item.ExpiryDate.Before(cutoff) {
			expiringSoon++
		}
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		TotalItems      int
		LowStockAlerts  int
		ExpiringSoon    int
		PendingEntries  int
		StockByCategory []model.CategoryStock
		RecentMovements []model.Movement
	}{
		PageData:        s.pageData("Dashboard", sess),
		TotalItems:      totalItems,
		LowStockAlerts:  lowStock,
		ExpiringSoon:    expiringSoon,
		PendingEntries:  pending,
		StockByCategory: byCategory,
		RecentMovements: movements,
	})
}
