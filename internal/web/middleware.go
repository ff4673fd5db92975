package web

import (
	"context"
	"net/http"

	"github.com/emart/inventory/internal/nav"
	"github.com/emart/inventory/internal/session"
)

type webContextKey string

const webSessionKey webContextKey = "websession"

// CookieAuthMiddleware restores the session from the auth cookie. Missing,
// invalid, expired and revoked tokens all redirect to the login page.
func CookieAuthMiddleware(sessions *session.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("token")
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			sess := sessions.RestoreToken(r.Context(), cookie.Value)
			if sess == nil {
				clearAuthCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webSessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireView gates a page behind the navigation catalog: roles that
// cannot see the view at path are redirected to their default view
// instead of shown an error.
func RequireView(path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetWebSession(r.Context())
			if sess == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if err := nav.Authorize(sess.Role, path); err != nil {
				redirectToDefault(w, r, sess.Role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectToDefault sends the browser to the role's first visible view,
// falling back to login when the role can see nothing.
func redirectToDefault(w http.ResponseWriter, r *http.Request, role string) {
	if view, ok := nav.DefaultView(role); ok {
		http.Redirect(w, r, view.Path, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetWebSession retrieves the restored session from web context.
func GetWebSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(webSessionKey).(*session.Session)
	return sess
}
