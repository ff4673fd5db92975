package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/auth"
	"github.com/emart/inventory/internal/rbac"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/workflow"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var missing *session.MissingFieldError
	var validation *workflow.ValidationError

	switch {
	case errors.As(err, &missing):
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  "missing required fields",
			"fields": missing.Fields,
		})
	case errors.As(err, &validation):
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  "missing required fields",
			"fields": validation.Fields,
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, rbac.ErrInvalidRole):
		jsonError(w, http.StatusBadRequest, "invalid role")
	case errors.Is(err, rbac.ErrPermissionDenied):
		jsonError(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, workflow.ErrNotFound), errors.Is(err, alerts.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not found")
	case errors.Is(err, workflow.ErrInvalidStateTransition):
		jsonError(w, http.StatusConflict, "entry already reviewed")
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
