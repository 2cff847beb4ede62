package sammelband

import (
	"context"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 8

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate returns an error if the user contains invalid fields.
func (u *User) Validate() error {
	if u.Email == "" {
		return Errorf(EINVALID, "email required")
	}
	if !strings.Contains(u.Email, "@") {
		return Errorf(EINVALID, "email %q is not an email address", u.Email)
	}
	if u.PasswordHash == "" {
		return Errorf(EINVALID, "password hash required")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword returns EINVALID if password is too short to use.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return Errorf(EINVALID, "password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// UserService represents a service for managing users.
type UserService interface {
	// CreateUser creates a new user.
	// Returns ECONFLICT if the email is already registered.
	CreateUser(ctx context.Context, user *User) error

	// FindUserByEmail retrieves a user by email.
	// Returns ENOTFOUND if no user has that email.
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser updates an existing user.
	// Returns ENOTFOUND if the user does not exist.
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error)
}

// UserUpdate represents fields that can be updated on a user.
type UserUpdate struct {
	PasswordHash *string `json:"-"`
	Verified     *bool   `json:"verified"`
}

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns EUNAUTHORIZED if password does not match hash.
	Compare(hash, password string) error
}
