package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

// Session is the server-side record of one signed-in browser.
type Session struct {
	ID        string            `json:"id"`
	Tokens    tokenset.TokenSet `json:"tokens"`
	Identity  identity.Identity `json:"identity"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// NewSession creates a session with a random ID that lives for ttl.
func NewSession(id identity.Identity, tokens tokenset.TokenSet, ttl time.Duration, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Tokens:    tokens,
		Identity:  id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session outlived its max age.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Tokens = s.Tokens.Clone()
	out.Identity = s.Identity.Clone()
	return &out
}
