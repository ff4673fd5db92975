package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/nav"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/workflow"
	webembed "github.com/emart/inventory/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"roleName": func(role string) string {
			switch role {
			case "admin":
				return "Administrator"
			case "maker":
				return "Maker"
			case "checker":
				return "Checker"
			default:
				return role
			}
		},
		"statusName": func(status string) string {
			switch status {
			case "pending":
				return "Pending"
			case "approved":
				return "Approved"
			case "rejected":
				return "Rejected"
			case "in_stock":
				return "In Stock"
			case "low_stock":
				return "Low Stock"
			case "out_of_stock":
				return "Out of Stock"
			case "active":
				return "Active"
			case "resolved":
				return "Resolved"
			default:
				return status
			}
		},
		"priorityName": func(priority string) string {
			switch priority {
			case "low":
				return "Low"
			case "medium":
				return "Medium"
			case "high":
				return "High"
			case "critical":
				return "Critical"
			default:
				return priority
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"entry.html",
		"approvals.html",
		"tracking.html",
		"alerts.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Session *session.Session
	Nav     []nav.View
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	Sessions  *session.Context
	Engine    *workflow.Engine
	Scanner   *alerts.Scanner
}

// pageData builds the base data for an authenticated page.
func (s *Server) pageData(title string, sess *session.Session) PageData {
	return PageData{
		Title:   title,
		Session: sess,
		Nav:     nav.VisibleViews(sess.Role),
	}
}
