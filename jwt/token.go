// Package jwt issues the signed tokens mailed for email verification and
// password reset.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sammelband/sammelband"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

// Ensure TokenService implements sammelband.TokenService at compile time.
var _ sammelband.TokenService = (*TokenService)(nil)

// claims carries the email and the action the token authorizes.
type claims struct {
	Email   string                  `json:"email"`
	Purpose sammelband.TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService implements sammelband.TokenService with HS256 JWTs.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithTTL sets how long issued tokens are valid.
func WithTTL(d time.Duration) Option {
	return func(s *TokenService) {
		s.ttl = d
	}
}

// WithClock sets the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, sammelband.Errorf(sammelband.EINVALID, "token secret required")
	}
	s := &TokenService{secret: []byte(secret), ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Encode returns a signed token binding email to purpose.
func (s *TokenService) Encode(email string, purpose sammelband.TokenPurpose) (string, error) {
	if email == "" {
		return "", sammelband.Errorf(sammelband.EINVALID, "email required")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns the email it was issued for.
func (s *TokenService) Decode(token string, purpose sammelband.TokenPurpose) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", sammelband.Errorf(sammelband.EUNAUTHORIZED, "token expired")
	}
	if err != nil {
		return "", sammelband.Errorf(sammelband.EUNAUTHORIZED, "invalid token")
	}
	if c.Purpose != purpose {
		return "", sammelband.Errorf(sammelband.EUNAUTHORIZED, "invalid token")
	}
	if c.Email == "" {
		return "", sammelband.Errorf(sammelband.EUNAUTHORIZED, "invalid token")
	}
	return c.Email, nil
}
