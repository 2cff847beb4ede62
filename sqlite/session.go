package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sammelband/sammelband"
)

// DefaultSessionTTL is how long a session survives without being saved.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Compile-time interface verification.
var _ sammelband.SessionStore = (*SessionStore)(nil)

// SessionStore implements sammelband.SessionStore using SQLite.
type SessionStore struct {
	db *DB

	// TTL is the idle lifetime of a session. Sessions not saved within TTL
	// are treated as missing and removed by PurgeExpired.
	TTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db, TTL: DefaultSessionTTL, Now: time.Now}
}

// FindSession retrieves a session by ID.
func (s *SessionStore) FindSession(ctx context.Context, id string) (*sammelband.Session, error) {
	var session sammelband.Session
	var format, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, logged_in, pocket_request_token, pocket_access_token, format, created_at, updated_at
		FROM sessions
		WHERE id = ? AND updated_at > ?
	`, id, formatTime(s.Now().Add(-s.TTL))).Scan(&session.ID, &session.Email, &session.LoggedIn,
		&session.PocketRequestToken, &session.PocketAccessToken, &format, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sammelband.Errorf(sammelband.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	session.Format = sammelband.Format(format)
	if session.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if session.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveSession inserts or replaces a session and refreshes its expiry.
func (s *SessionStore) SaveSession(ctx context.Context, session *sammelband.Session) error {
	if session.ID == "" {
		return sammelband.Errorf(sammelband.EINVALID, "session ID required")
	}

	now := s.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, email, logged_in, pocket_request_token, pocket_access_token, format, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			logged_in = excluded.logged_in,
			pocket_request_token = excluded.pocket_request_token,
			pocket_access_token = excluded.pocket_access_token,
			format = excluded.format,
			updated_at = excluded.updated_at
	`, session.ID, session.Email, session.LoggedIn, session.PocketRequestToken, session.PocketAccessToken,
		string(session.Format), formatTime(session.CreatedAt), formatTime(session.UpdatedAt))
	return err
}

// DeleteSession removes a session.
func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	return err
}

// PurgeExpired removes sessions idle for longer than TTL and returns how
// many were removed.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at <= ?", formatTime(s.Now().Add(-s.TTL)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
