package session

import (
	"context"
)

// Store defines the interface for session persistence.
// Implementations handle storage-specific operations like
// database queries or cache lookups, and must be safe for
// concurrent use across exchanges.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its token.
	// Returns ErrNotFound if the session doesn't exist.
	// Returns ErrExpired if the session has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves changes to an existing session.
	// The write must be durable when Update returns: flash data
	// rides on sessions and has to be persisted before response
	// headers are sent.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by its ID.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all expired sessions and returns the
	// count of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}
