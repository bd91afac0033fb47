package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/pkce"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
	"github.com/axolutions/linkbio-dashboard/pkg/sso"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

// ProviderID names the single OAuth provider in logs.
const ProviderID = "axolutions-sso"

// ProviderAdapter is the part of the SSO client the sign-in flow needs.
// *sso.Client satisfies it.
type ProviderAdapter interface {
	// AuthorizationURL builds the authorize redirect. It never includes the
	// verifier.
	AuthorizationURL(pair pkce.Pair, state, redirectURI string) string

	// Exchange trades an authorization code for tokens. redirectURI must be
	// the one sent in the authorize request.
	Exchange(ctx context.Context, code, verifier, redirectURI string) (tokenset.TokenSet, error)

	FetchProfile(ctx context.Context, accessToken string) (sso.Profile, error)

	// MapProfile normalizes a validated profile into an Identity.
	MapProfile(p sso.Profile) (identity.Identity, error)

	// Revoke is best effort and never reports failure.
	Revoke(ctx context.Context, token string)
}

// SessionManager creates and destroys browser sessions. *session.Manager
// satisfies it.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, id identity.Identity, tokens tokenset.TokenSet) (*session.Session, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, error)
}

// LoginRecorder is notified after every successful sign-in.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, subject string, at time.Time) error
}

var (
	_ ProviderAdapter = (*sso.Client)(nil)
	_ SessionManager  = (*session.Manager)(nil)
)
