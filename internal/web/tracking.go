package web

import (
	"log/slog"
	"net/http"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/store"
)

type trackedItem struct {
	model.StockItem
	StatusLabel string
}

type trackingPageData struct {
	PageData
	Items     []trackedItem
	Movements []model.Movement
	Search    string
	Status    string
}

// TrackingPage handles GET /tracking.
func (s *Server) TrackingPage(w http.ResponseWriter, r *http.Request) {
	sess := GetWebSession(r.Context())
	search := r.URL.Query().Get("search")
	statusFilter := r.URL.Query().Get("status")

	items, err := store.ListStock(r.Context(), s.DB, search)
	if err != nil {
		slog.Error("failed to list stock", "error", err)
	}
	movements, err := store.ListMovements(r.Context(), s.DB, 20)
	if err != nil {
		slog.Error("failed to list movements", "error", err)
	}

	var tracked []trackedItem
	for i := range items {
		status := items[i].Status()
		if statusFilter != "" && status != statusFilter {
			continue
		}
		tracked = append(tracked, trackedItem{StockItem: items[i], StatusLabel: status})
	}

	s.Templates.Render(w, "tracking.html", &trackingPageData{
		PageData:  s.pageData("Tracking", sess),
		Items:     tracked,
		Movements: movements,
		Search:    search,
		Status:    statusFilter,
	})
}
