package session

import (
	"context"
	"errors"
	"testing"

	"github.com/emart/inventory/internal/auth"
	"github.com/emart/inventory/internal/db"
	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/rbac"
)

const testSecret = "test-session-secret"

func newTestContext(t *testing.T) *Context {
	t.Helper()
	database := db.NewTestDB(t)
	return NewContext(database, SettingsStore{DB: database},
		auth.SharedSecretVerifier{Secret: "demo123"}, testSecret)
}

func TestLoginSuccess(t *testing.T) {
	c := newTestContext(t)
	ctx := context.Background()

	sess, err := c.Login(ctx, "jane", "demo123", model.RoleMaker)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Username != "jane" {
		t.Errorf("expected username 'jane', got %q", sess.Username)
	}
	if sess.Role != model.RoleMaker {
		t.Errorf("expected role 'maker', got %q", sess.Role)
	}
	if sess.Token == "" {
		t.Error("expected non-empty token")
	}
}

func TestLoginMissingFields(t *testing.T) {
	c := newTestContext(t)
	ctx := context.Background()

	tests := []struct {
		username, password, role string
		wantFields               int
	}{
		{"", "", "", 3},
		{"jane", "", "", 2},
		{"jane", "demo123", "", 1},
		{"", "demo123", model.RoleMaker, 1},
	}

	for _, tt := range tests {
		_, err := c.Login(ctx, tt.username, tt.password, tt.role)
		var mf *MissingFieldError
		if !errors.As(err, &mf) {
			t.Errorf("Login(%q, _, %q) error = %v, want MissingFieldError", tt.username, tt.role, err)
			continue
		}
		if len(mf.Fields) != tt.wantFields {
			t.Errorf("Login(%q, _, %q) named %d fields, want %d", tt.username, tt.role, len(mf.Fields), tt.wantFields)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	c := newTestContext(t)

	_, err := c.Login(context.Background(), "sam", "wrongpass", model.RoleChecker)
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// No session was persisted.
	if sess := c.Restore(context.Background()); sess != nil {
		t.Errorf("expected no restored session after failed login, got %+v", sess)
	}
}

func TestLoginInvalidRole(t *testing.T) {
	c := newTestContext(t)

	_, err := c.Login(context.Background(), "jane", "demo123", "superuser")
	if !errors.Is(err, rbac.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	c := newTestContext(t)
	ctx := context.Background()

	// Nothing persisted yet.
	if sess := c.Restore(ctx); sess != nil {
		t.Fatalf("expected nil session before login, got %+v", sess)
	}

	logged, err := c.Login(ctx, "jane", "demo123", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	restored := c.Restore(ctx)
	if restored == nil {
		t.Fatal("expected restored session after login")
	}
	if restored.Username != "jane" || restored.Role != model.RoleAdmin {
		t.Errorf("restored session = %+v", restored)
	}
	if restored.Token != logged.Token {
		t.Error("restored token differs from issued token")
	}
}

func TestRestoreTokenGarbage(t *testing.T) {
	c := newTestContext(t)

	if sess := c.RestoreToken(context.Background(), "not-a-token"); sess != nil {
		t.Errorf("expected nil for garbage token, got %+v", sess)
	}
}

func TestLogout(t *testing.T) {
	c := newTestContext(t)
	ctx := context.Background()

	sess, err := c.Login(ctx, "jane", "demo123", model.RoleMaker)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := c.Logout(ctx, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if restored := c.Restore(ctx); restored != nil {
		t.Errorf("expected no session after logout, got %+v", restored)
	}

	// The token itself is revoked, not just forgotten.
	if revived := c.RestoreToken(ctx, sess.Token); revived != nil {
		t.Error("expected revoked token to be unusable")
	}

	// Logout is idempotent.
	if err := c.Logout(ctx, sess); err != nil {
		t.Errorf("second Logout: %v", err)
	}
	if err := c.Logout(ctx, nil); err != nil {
		t.Errorf("Logout(nil): %v", err)
	}
}
