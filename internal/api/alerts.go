package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/store"
)

// AlertsHandler handles stock alert endpoints.
type AlertsHandler struct {
	DB      *sql.DB
	Scanner *alerts.Scanner
}

// List handles GET /api/alerts.
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := store.ListAlerts(r.Context(), h.DB, r.URL.Query().Get("status"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}
	if list == nil {
		list = []model.Alert{}
	}
	jsonResponse(w, http.StatusOK, list)
}

// Resolve handles POST /api/alerts/{id}/resolve.
func (h *AlertsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	alert, err := h.Scanner.Resolve(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, alert)
}

// Email handles POST /api/alerts/{id}/email.
func (h *AlertsHandler) Email(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Scanner.SendEmail(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Scan handles POST /api/alerts/scan.
func (h *AlertsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	created, err := h.Scanner.Scan(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "alert scan failed")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"created": created})
}
