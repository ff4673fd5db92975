package store

import (
	"context"
	"testing"
	"time"

	"github.com/emart/inventory/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "test-jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected token not to be revoked")
	}

	if err := RevokeToken(ctx, database, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "test-jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}

	revoked, _ = IsTokenRevoked(ctx, database, "test-jti-2")
	if revoked {
		t.Error("expected different token not to be revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Revoking the same token twice should not error (INSERT OR IGNORE).
	if err := RevokeToken(ctx, database, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("first RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("second RevokeToken: %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if v, _ := GetSetting(ctx, database, "auth_token"); v != "" {
		t.Errorf("expected empty value for unset key, got %q", v)
	}

	if err := SetSetting(ctx, database, "auth_token", "abc"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if v, _ := GetSetting(ctx, database, "auth_token"); v != "abc" {
		t.Errorf("expected 'abc', got %q", v)
	}

	// Overwrite.
	SetSetting(ctx, database, "auth_token", "def")
	if v, _ := GetSetting(ctx, database, "auth_token"); v != "def" {
		t.Errorf("expected 'def', got %q", v)
	}

	if err := DeleteSetting(ctx, database, "auth_token"); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	if v, _ := GetSetting(ctx, database, "auth_token"); v != "" {
		t.Errorf("expected empty after delete, got %q", v)
	}

	// Deleting again is a no-op.
	if err := DeleteSetting(ctx, database, "auth_token"); err != nil {
		t.Errorf("second DeleteSetting: %v", err)
	}
}

func TestGetJWTSecretGeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}
