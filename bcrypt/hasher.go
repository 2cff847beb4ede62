// Package bcrypt hashes account passwords with bcrypt.
package bcrypt

import (
	"errors"
	"fmt"

	"github.com/sammelband/sammelband"
	"golang.org/x/crypto/bcrypt"
)

// Ensure PasswordHasher implements sammelband.PasswordHasher at compile time.
var _ sammelband.PasswordHasher = (*PasswordHasher)(nil)

// PasswordHasher implements sammelband.PasswordHasher.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. A cost of
// zero selects bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", sammelband.Errorf(sammelband.EINVALID, "password is too long")
	}
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Compare returns EUNAUTHORIZED when password does not match hash.
func (h *PasswordHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return sammelband.Errorf(sammelband.EUNAUTHORIZED, "wrong email or password")
	}
	if err != nil {
		return fmt.Errorf("comparing password: %w", err)
	}
	return nil
}
