package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/emart/inventory/internal/store"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks a username/password pair. Implementations are
// swappable without touching the session or workflow contracts.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

// SharedSecretVerifier accepts any username paired with a single shared
// password. This is the demo deployment mode.
type SharedSecretVerifier struct {
	Secret string
}

// Verify compares the password against the shared secret in constant time.
func (v SharedSecretVerifier) Verify(_ context.Context, _, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(v.Secret)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// StoreVerifier checks credentials against bcrypt hashes in the users table.
type StoreVerifier struct {
	DB *sql.DB
}

// Verify looks up the account and compares the bcrypt hash.
func (v StoreVerifier) Verify(ctx context.Context, username, password string) error {
	user, err := store.GetUserByUsername(ctx, v.DB, username)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || user.DeletedAt != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
