package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by a SessionStore for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore keeps server-side session records keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type SessionUsecase interface {
	// Create issues a new session for userID. A non-empty previous token is
	// destroyed first so a client holds at most one live session.
	Create(ctx context.Context, userID, previousToken string) (string, error)
	// Resolve returns the user bound to token, or false when there is none.
	Resolve(ctx context.Context, token string) (string, bool, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}
