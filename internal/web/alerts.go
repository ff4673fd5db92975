package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/rbac"
	"github.com/emart/inventory/internal/store"
)

type alertsPageData struct {
	PageData
	Alerts     []model.Alert
	Status     string
	CanResolve bool
}

// AlertsPage handles GET /alerts.
func (s *Server) AlertsPage(w http.ResponseWriter, r *http.Request) {
	s.renderAlertsPage(w, r, r.URL.Query().Get("status"), "", "")
}

// AlertResolveSubmit handles POST /alerts/{id}/resolve.
func (s *Server) AlertResolveSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := s.Scanner.Resolve(r.Context(), id); err != nil {
		if errors.Is(err, alerts.ErrNotFound) {
			s.renderAlertsPage(w, r, "", "Alert not found.", "")
			return
		}
		s.renderAlertsPage(w, r, "", "Failed to resolve alert.", "")
		return
	}
	s.renderAlertsPage(w, r, "", "", "Alert resolved.")
}

// AlertEmailSubmit handles POST /alerts/{id}/email.
func (s *Server) AlertEmailSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.Scanner.SendEmail(r.Context(), id); err != nil {
		if errors.Is(err, alerts.ErrNotFound) {
			s.renderAlertsPage(w, r, "", "Alert not found.", "")
			return
		}
		s.renderAlertsPage(w, r, "", "Failed to send email.", "")
		return
	}
	s.renderAlertsPage(w, r, "", "", "Alert notification sent via email.")
}

// AlertScanSubmit handles POST /alerts/scan.
func (s *Server) AlertScanSubmit(w http.ResponseWriter, r *http.Request) {
	created, err := s.Scanner.Scan(r.Context())
	if err != nil {
		s.renderAlertsPage(w, r, "", "Alert scan failed.", "")
		return
	}
	s.renderAlertsPage(w, r, "", "", "Scan complete: "+strconv.Itoa(created)+" new alert(s).")
}

func (s *Server) renderAlertsPage(w http.ResponseWriter, r *http.Request, status, errMsg, successMsg string) {
	sess := GetWebSession(r.Context())

	list, err := store.ListAlerts(r.Context(), s.DB, status)
	if err != nil {
		slog.Error("failed to list alerts", "error", err)
	}

	data := s.pageData("Alerts", sess)
	data.Error = errMsg
	data.Success = successMsg
	s.Templates.Render(w, "alerts.html", &alertsPageData{
		PageData:   data,
		Alerts:     list,
		Status:     status,
		CanResolve: rbac.HasCapability(sess.Role, rbac.CapResolveAlert),
	})
}
