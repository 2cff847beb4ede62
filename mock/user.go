package mock

import (
	"context"

	"github.com/sammelband/sammelband"
)

// Compile-time interface verification.
var (
	_ sammelband.UserService    = (*UserService)(nil)
	_ sammelband.SessionStore   = (*SessionStore)(nil)
	_ sammelband.PasswordHasher = (*PasswordHasher)(nil)
	_ sammelband.TokenService   = (*TokenService)(nil)
)

// UserService is a mock implementation of sammelband.UserService.
type UserService struct {
	CreateUserFn      func(ctx context.Context, user *sammelband.User) error
	FindUserByEmailFn func(ctx context.Context, email string) (*sammelband.User, error)
	UpdateUserFn      func(ctx context.Context, id string, upd sammelband.UserUpdate) (*sammelband.User, error)
}

func (s *UserService) CreateUser(ctx context.Context, user *sammelband.User) error {
	return s.CreateUserFn(ctx, user)
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*sammelband.User, error) {
	return s.FindUserByEmailFn(ctx, email)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, upd sammelband.UserUpdate) (*sammelband.User, error) {
	return s.UpdateUserFn(ctx, id, upd)
}

// SessionStore is a mock implementation of sammelband.SessionStore.
type SessionStore struct {
	FindSessionFn   func(ctx context.Context, id string) (*sammelband.Session, error)
	SaveSessionFn   func(ctx context.Context, session *sammelband.Session) error
	DeleteSessionFn func(ctx context.Context, id string) error
}

func (s *SessionStore) FindSession(ctx context.Context, id string) (*sammelband.Session, error) {
	return s.FindSessionFn(ctx, id)
}

func (s *SessionStore) SaveSession(ctx context.Context, session *sammelband.Session) error {
	return s.SaveSessionFn(ctx, session)
}

func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}

// PasswordHasher is a mock implementation of sammelband.PasswordHasher.
type PasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hash, password string) error
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	return h.HashFn(password)
}

func (h *PasswordHasher) Compare(hash, password string) error {
	return h.CompareFn(hash, password)
}

// TokenService is a mock implementation of sammelband.TokenService.
type TokenService struct {
	EncodeFn func(email string, purpose sammelband.TokenPurpose) (string, error)
	DecodeFn func(token string, purpose sammelband.TokenPurpose) (string, error)
}

func (s *TokenService) Encode(email string, purpose sammelband.TokenPurpose) (string, error) {
	return s.EncodeFn(email, purpose)
}

func (s *TokenService) Decode(token string, purpose sammelband.TokenPurpose) (string, error) {
	return s.DecodeFn(token, purpose)
}
