package session

import "context"

// Store persists sessions by ID. Implementations must return
// ErrSessionNotFound for unknown or expired IDs and must not hand out
// references to their internal state.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	// Save inserts or replaces s. The record expires at s.ExpiresAt.
	Save(ctx context.Context, s *Session) error
	// Update replaces s only while its record still exists and keeps the
	// current expiry. It returns ErrSessionNotFound otherwise.
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
