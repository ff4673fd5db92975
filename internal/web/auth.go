package web

import (
	"errors"
	"net/http"

	"github.com/emart/inventory/internal/auth"
	"github.com/emart/inventory/internal/rbac"
	"github.com/emart/inventory/internal/session"
)

type loginPageData struct {
	PageData
	Roles    []string
	Username string
	Role     string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &loginPageData{
		PageData: PageData{Title: "Sign In"},
		Roles:    rbac.Roles(),
	})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	role := r.FormValue("role")

	renderError := func(msg string) {
		s.Templates.Render(w, "login.html", &loginPageData{
			PageData: PageData{Title: "Sign In", Error: msg},
			Roles:    rbac.Roles(),
			Username: username,
			Role:     role,
		})
	}

	sess, err := s.Sessions.Login(r.Context(), username, password, role)
	if err != nil {
		var missing *session.MissingFieldError
		switch {
		case errors.As(err, &missing):
			renderError("Please fill in all fields.")
		case errors.Is(err, auth.ErrInvalidCredentials):
			renderError("Invalid username or password.")
		case errors.Is(err, rbac.ErrInvalidRole):
			renderError("Please select a valid role.")
		default:
			renderError("Sign in failed.")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	})

	redirectToDefault(w, r, sess.Role)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if sess := s.Sessions.RestoreToken(r.Context(), cookie.Value); sess != nil {
			s.Sessions.Logout(r.Context(), sess)
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
