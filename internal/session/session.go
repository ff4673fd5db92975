// Package session represents who is currently using the system and how
// that survives restarts: a signed token plus the principal's role, held
// by a persistence collaborator under two well-known keys.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emart/inventory/internal/auth"
	"github.com/emart/inventory/internal/rbac"
	"github.com/emart/inventory/internal/store"
)

// Well-known persistence keys. The values are opaque strings; token
// present implies authenticated.
const (
	KeyAuthToken = "auth_token"
	KeyUserRole  = "user_role"
)

// Session is an authenticated principal bound to a role.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store is the persistence collaborator: two opaque string values under
// well-known keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MissingFieldError reports login inputs that were left empty.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Context authenticates principals and manages their persisted sessions.
type Context struct {
	db       *sql.DB
	store    Store
	verifier auth.CredentialVerifier
	secret   string
}

// NewContext creates a session context. The verifier is pluggable; swap it
// for a real credential backend without touching the workflow contract.
func NewContext(db *sql.DB, st Store, verifier auth.CredentialVerifier, secret string) *Context {
	return &Context{db: db, store: st, verifier: verifier, secret: secret}
}

// Login authenticates username/password, validates the requested role
// against the closed role set, and persists the resulting session.
func (c *Context) Login(ctx context.Context, username, password, role string) (*Session, error) {
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}

	if err := c.verifier.Verify(ctx, username, password); err != nil {
		return nil, err
	}

	if !rbac.ValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", role, rbac.ErrInvalidRole)
	}

	token, err := auth.GenerateToken(c.secret, username, role)
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	if c.store != nil {
		if err := c.store.Set(ctx, KeyAuthToken, token); err != nil {
			return nil, fmt.Errorf("persisting session: %w", err)
		}
		if err := c.store.Set(ctx, KeyUserRole, role); err != nil {
			return nil, fmt.Errorf("persisting session: %w", err)
		}
	}

	slog.Info("user logged in", "user", username, "role", role)
	return &Session{Token: token, Username: username, Role: role}, nil
}

// Restore reconstructs a session from persisted state. It returns nil when
// no valid session exists; it never fails.
func (c *Context) Restore(ctx context.Context) *Session {
	if c.store == nil {
		return nil
	}
	token, err := c.store.Get(ctx, KeyAuthToken)
	if err != nil || token == "" {
		return nil
	}
	return c.RestoreToken(ctx, token)
}

// RestoreToken reconstructs a session from a raw token (a cookie or header
// value). Invalid, expired and revoked tokens all yield nil.
func (c *Context) RestoreToken(ctx context.Context, token string) *Session {
	claims, err := auth.ValidateToken(c.secret, token)
	if err != nil {
		return nil
	}
	if !rbac.ValidRole(claims.Role) {
		return nil
	}
	if claims.ID != "" && c.db != nil {
		revoked, err := store.IsTokenRevoked(ctx, c.db, claims.ID)
		if err != nil || revoked {
			return nil
		}
	}
	return &Session{Token: token, Username: claims.Username, Role: claims.Role}
}

// Logout revokes the session's token and clears persisted state. Logging
// out an absent or already-logged-out session is a no-op.
func (c *Context) Logout(ctx context.Context, sess *Session) error {
	if sess != nil && sess.Token != "" && c.db != nil {
		if claims, err := auth.ValidateToken(c.secret, sess.Token); err == nil && claims.ID != "" {
			if err := store.RevokeToken(ctx, c.db, claims.ID, claims.ExpiresAt.Time); err != nil {
				return fmt.Errorf("revoking session token: %w", err)
			}
		}
	}

	if c.store != nil {
		if err := c.store.Delete(ctx, KeyAuthToken); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		if err := c.store.Delete(ctx, KeyUserRole); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
	}
	return nil
}
