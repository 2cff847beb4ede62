package sammelband

import (
	"context"
	"time"
)

// Session is the server-side state attached to a browser cookie.
type Session struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email,omitempty"`
	LoggedIn           bool      `json:"loggedIn"`
	PocketRequestToken string    `json:"pocketRequestToken,omitempty"`
	PocketAccessToken  string    `json:"pocketAccessToken,omitempty"`
	Format             Format    `json:"format,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Logout clears the account state from the session. Pocket tokens and the
// last compiled format are kept.
func (s *Session) Logout() {
	s.LoggedIn = false
	s.Email = ""
}

// SessionStore persists sessions.
type SessionStore interface {
	// FindSession retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist or has expired.
	FindSession(ctx context.Context, id string) (*Session, error)

	// SaveSession inserts or replaces a session.
	SaveSession(ctx context.Context, session *Session) error

	// DeleteSession removes a session. Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, id string) error
}
