package auth

import (
	"context"
	"errors"
	"testing"
)

func TestSharedSecretVerifier(t *testing.T) {
	v := SharedSecretVerifier{Secret: "demo123"}
	ctx := context.Background()

	if err := v.Verify(ctx, "jane", "demo123"); err != nil {
		t.Errorf("expected success for correct password, got %v", err)
	}
	if err := v.Verify(ctx, "anyone-else", "demo123"); err != nil {
		t.Errorf("username should not matter, got %v", err)
	}

	err := v.Verify(ctx, "sam", "wrongpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	err = v.Verify(ctx, "sam", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}
