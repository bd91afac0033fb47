package tokenset

import "time"

// RefreshAccessTokenError is the sticky tag recorded on a TokenSet once a
// refresh has irrecoverably failed.
const RefreshAccessTokenError = "RefreshAccessTokenError"

// DefaultSkew is subtracted from the expiry before comparing with the clock.
const DefaultSkew = 60 * time.Second

// TokenSet is the credential material for one session.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresAt    *int64 `json:"expires_at,omitempty"` // epoch seconds; nil never expires
	Error        string `json:"error,omitempty"`
}

// ExpiresIn converts a relative lifetime into an absolute ExpiresAt value.
// Non-positive lifetimes yield nil.
func ExpiresIn(now time.Time, seconds int64) *int64 {
	if seconds <= 0 {
		return nil
	}
	at := now.Unix() + seconds
	return &at
}

// Expiry returns ExpiresAt as a time, or the zero time when unset.
func (t TokenSet) Expiry() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return time.Unix(*t.ExpiresAt, 0)
}

// HasRefreshToken reports whether a refresh can be attempted.
func (t TokenSet) HasRefreshToken() bool {
	return t.RefreshToken != ""
}

// IsInvalid reports whether a sticky refresh error is recorded.
func (t TokenSet) IsInvalid() bool {
	return t.Error != ""
}

// IsExpired applies the skew: now >= expiresAt - skew. A nil ExpiresAt is
// never expired.
func (t TokenSet) IsExpired(now time.Time, skew time.Duration) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return now.Unix() >= *t.ExpiresAt-int64(skew/time.Second)
}

// State derives the lifecycle state at now.
func (t TokenSet) State(now time.Time, skew time.Duration) State {
	switch {
	case t.IsInvalid():
		return StateInvalid
	case t.IsExpired(now, skew):
		return StateExpired
	default:
		return StateFresh
	}
}

// Invalidated returns a copy tagged with RefreshAccessTokenError. Token
// fields are left untouched.
func (t TokenSet) Invalidated() TokenSet {
	t.Error = RefreshAccessTokenError
	return t
}

// Merge applies a refresh response onto t. The previous refresh token is kept
// when the provider does not rotate it, and the error tag is cleared.
//
// ExpiresAt always comes from the response. A response without expires_in
// leaves it nil, which State reports as FRESH from then on.
func (t TokenSet) Merge(refreshed TokenSet) TokenSet {
	out := refreshed
	if out.RefreshToken == "" {
		out.RefreshToken = t.RefreshToken
	}
	if out.TokenType == "" {
		out.TokenType = t.TokenType
	}
	out.Error = ""
	return out
}

// Clone returns a copy that shares no pointers with t.
func (t TokenSet) Clone() TokenSet {
	if t.ExpiresAt != nil {
		at := *t.ExpiresAt
		t.ExpiresAt = &at
	}
	return t
}
