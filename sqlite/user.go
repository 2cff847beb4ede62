package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sammelband/sammelband"
)

// Compile-time interface verification.
var _ sammelband.UserService = (*UserService)(nil)

// UserService implements sammelband.UserService using SQLite.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user. The email is normalized before storing.
func (s *UserService) CreateUser(ctx context.Context, user *sammelband.User) error {
	user.Email = sammelband.NormalizeEmail(user.Email)
	if err := user.Validate(); err != nil {
		return err
	}

	user.ID = uuid.New().String()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.PasswordHash, user.Verified,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt))
	if isUniqueViolation(err) {
		return sammelband.Errorf(sammelband.ECONFLICT, "email %s is already registered", user.Email)
	}
	return err
}

// FindUserByEmail retrieves a user by email, ignoring case.
func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*sammelband.User, error) {
	return s.findUser(ctx, "email = ?", sammelband.NormalizeEmail(email))
}

func (s *UserService) findUser(ctx context.Context, where string, arg any) (*sammelband.User, error) {
	var user sammelband.User
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, verified, created_at, updated_at
		FROM users
		WHERE `+where, arg).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Verified,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sammelband.Errorf(sammelband.ENOTFOUND, "user not found")
	}
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd sammelband.UserUpdate) (*sammelband.User, error) {
	user, err := s.findUser(ctx, "id = ?", id)
	if err != nil {
		return nil, err
	}

	if upd.PasswordHash != nil {
		user.PasswordHash = *upd.PasswordHash
	}
	if upd.Verified != nil {
		user.Verified = *upd.Verified
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, verified = ?, updated_at = ?
		WHERE id = ?
	`, user.PasswordHash, user.Verified, formatTime(user.UpdatedAt), id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
