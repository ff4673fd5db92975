package web

import (
	"database/sql"
	"net/http"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/workflow"
	webembed "github.com/emart/inventory/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, sessions *session.Context, engine *workflow.Engine, scanner *alerts.Scanner) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Sessions:  sessions,
		Engine:    engine,
		Scanner:   scanner,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(sessions)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes, each gated by the navigation catalog.
	mux.Handle("GET /{$}", cookieAuth(RequireView("/")(http.HandlerFunc(s.Dashboard))))

	mux.Handle("GET /entry", cookieAuth(RequireView("/entry")(http.HandlerFunc(s.EntryPage))))
	mux.Handle("POST /entry", cookieAuth(RequireView("/entry")(http.HandlerFunc(s.EntrySubmit))))

	mux.Handle("GET /approvals", cookieAuth(RequireView("/approvals")(http.HandlerFunc(s.ApprovalsPage))))
	mux.Handle("POST /approvals/{id}", cookieAuth(RequireView("/approvals")(http.HandlerFunc(s.ApprovalSubmit))))

	mux.Handle("GET /tracking", cookieAuth(RequireView("/tracking")(http.HandlerFunc(s.TrackingPage))))

	mux.Handle("GET /alerts", cookieAuth(RequireView("/alerts")(http.HandlerFunc(s.AlertsPage))))
	mux.Handle("POST /alerts/scan", cookieAuth(RequireView("/alerts")(http.HandlerFunc(s.AlertScanSubmit))))
	mux.Handle("POST /alerts/{id}/resolve", cookieAuth(RequireView("/alerts")(http.HandlerFunc(s.AlertResolveSubmit))))
	mux.Handle("POST /alerts/{id}/email", cookieAuth(RequireView("/alerts")(http.HandlerFunc(s.AlertEmailSubmit))))

	// Unknown paths land on the role's default view.
	mux.Handle("/", cookieAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetWebSession(r.Context())
		redirectToDefault(w, r, sess.Role)
	})))

	return mux, nil
}
