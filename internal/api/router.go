package api

import (
	"database/sql"
	"net/http"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/rbac"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/workflow"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, sessions *session.Context, engine *workflow.Engine, scanner *alerts.Scanner) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Sessions: sessions}
	usersHandler := &UsersHandler{DB: db}
	entriesHandler := &EntriesHandler{DB: db, Engine: engine}
	stockHandler := &StockHandler{DB: db}
	alertsHandler := &AlertsHandler{DB: db, Scanner: scanner}
	dashboardHandler := &DashboardHandler{DB: db}

	authMW := AuthMiddleware(sessions)
	requireSubmit := RequireCapability(rbac.CapSubmitEntry)
	requireReview := RequireCapability(rbac.CapReviewEntry)
	requireTracking := RequireCapability(rbac.CapViewTracking)
	requireAlerts := RequireCapability(rbac.CapViewAlerts)
	requireResolve := RequireCapability(rbac.CapResolveAlert)
	requireDashboard := RequireCapability(rbac.CapViewDashboard)
	requireManage := RequireCapability(rbac.CapManageUsers)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Dashboard.
	mux.Handle("GET /api/dashboard", authMW(requireDashboard(http.HandlerFunc(dashboardHandler.Metrics))))

	// Workflow entries: submit (maker), review and pending (checker).
	mux.Handle("POST /api/entries", authMW(requireSubmit(http.HandlerFunc(entriesHandler.Submit))))
	mux.Handle("GET /api/entries", authMW(requireReview(http.HandlerFunc(entriesHandler.List))))
	mux.Handle("GET /api/entries/pending", authMW(requireReview(http.HandlerFunc(entriesHandler.Pending))))
	mux.Handle("POST /api/entries/{id}/review", authMW(requireReview(http.HandlerFunc(entriesHandler.Review))))

	// Stock tracking.
	mux.Handle("GET /api/stock", authMW(requireTracking(http.HandlerFunc(stockHandler.List))))
	mux.Handle("GET /api/stock/{id}/movements", authMW(requireTracking(http.HandlerFunc(stockHandler.Movements))))
	mux.Handle("GET /api/movements", authMW(requireTracking(http.HandlerFunc(stockHandler.RecentMovements))))

	// Alerts.
	mux.Handle("GET /api/alerts", authMW(requireAlerts(http.HandlerFunc(alertsHandler.List))))
	mux.Handle("POST /api/alerts/scan", authMW(requireAlerts(http.HandlerFunc(alertsHandler.Scan))))
	mux.Handle("POST /api/alerts/{id}/resolve", authMW(requireResolve(http.HandlerFunc(alertsHandler.Resolve))))
	mux.Handle("POST /api/alerts/{id}/email", authMW(requireResolve(http.HandlerFunc(alertsHandler.Email))))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireManage(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireManage(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireManage(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireManage(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireManage(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireManage(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
