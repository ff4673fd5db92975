package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/store"
)

// StockHandler handles stock tracking endpoints.
type StockHandler struct {
	DB *sql.DB
}

type stockItemResponse struct {
	model.StockItem
	Status string `json:"status"`
}

// List handles GET /api/stock.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListStock(r.Context(), h.DB, r.URL.Query().Get("search"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list stock")
		return
	}

	statusFilter := r.URL.Query().Get("status")
	resp := []stockItemResponse{}
	for _, item := range items {
		status := item.Status()
		if statusFilter != "" && status != statusFilter {
			continue
		}
		resp = append(resp, stockItemResponse{StockItem: item, Status: status})
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Movements handles GET /api/stock/{id}/movements.
func (h *StockHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	movements, err := store.ListItemMovements(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}
	if movements == nil {
		movements = []model.Movement{}
	}
	jsonResponse(w, http.StatusOK, movements)
}

// RecentMovements handles GET /api/movements.
func (h *StockHandler) RecentMovements(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	movements, err := store.ListMovements(r.Context(), h.DB, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}
	if movements == nil {
		movements = []model.Movement{}
	}
	jsonResponse(w, http.StatusOK, movements)
}
