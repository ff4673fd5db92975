package model

import (
	"errors"
	"time"
)

// User represents a stored account (separate from demo sessions, which
// only carry a role).
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles. The set is closed; anything else is invalid.
const (
	RoleAdmin   = "admin"
	RoleMaker   = "maker"
	RoleChecker = "checker"
)

// ErrPasswordTooShort is returned for passwords under the minimum length.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// ValidatePassword checks password requirements for stored accounts.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}
