package api

import (
	"net/http"

	"github.com/emart/inventory/internal/session"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Sessions *session.Context
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.Sessions.Login(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, loginResponse{
		Token:    sess.Token,
		Username: sess.Username,
		Role:     sess.Role,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())
	if err := h.Sessions.Logout(r.Context(), sess); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
