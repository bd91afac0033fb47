package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/statemachine"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

// Status is the authentication state exposed to the UI.
type Status string

const (
	StatusLoading         Status = "LOADING"
	StatusAuthenticated   Status = "AUTHENTICATED"
	StatusUnauthenticated Status = "UNAUTHENTICATED"
	StatusError           Status = "ERROR"
)

// Event drives projection transitions.
type Event string

const (
	EventResolved Event = "resolved"
	EventMissing  Event = "missing"
	EventFailed   Event = "failed"
	EventSignOut  Event = "sign_out"
)

// Projection is the per-request authentication state machine.
var Projection = statemachine.MustDefine(StatusLoading,
	statemachine.WithTransition(StatusLoading, StatusAuthenticated, EventResolved),
	statemachine.WithTransition(StatusLoading, StatusUnauthenticated, EventMissing),
	statemachine.WithTransition(StatusAuthenticated, StatusError, EventFailed),
	statemachine.WithTransition(StatusLoading, StatusUnauthenticated, EventSignOut),
	statemachine.WithTransition(StatusAuthenticated, StatusUnauthenticated, EventSignOut),
	statemachine.WithTransition(StatusError, StatusUnauthenticated, EventSignOut),
	statemachine.WithTransition(StatusUnauthenticated, StatusUnauthenticated, EventSignOut),
)

// View is the immutable projection of a session for one request. It is
// replaced wholesale, never modified.
type View struct {
	Status      Status             `json:"status"`
	Identity    *identity.Identity `json:"user,omitempty"`
	Error       string             `json:"error,omitempty"`
	Expires     time.Time          `json:"expires,omitzero"`
	SessionID   string             `json:"-"`
	AccessToken string             `json:"-"`
}

// Unauthenticated is the view of a request without a usable session.
func Unauthenticated() View {
	return View{Status: StatusUnauthenticated}
}

// IsAuthenticated reports whether an identity is available. A view in
// ERROR still carries the identity for display.
func (v View) IsAuthenticated() bool {
	return v.Identity != nil && (v.Status == StatusAuthenticated || v.Status == StatusError)
}

// NeedsRenewal reports whether the token refresh failed and the user must
// sign in again.
func (v View) NeedsRenewal() bool {
	return v.Status == StatusError
}

// SignedOut returns the view after an explicit sign-out from any state.
func (v View) SignedOut(ctx context.Context) View {
	m := Projection.At(v.Status)
	if _, err := m.Fire(ctx, EventSignOut, nil); err != nil {
		return Unauthenticated()
	}
	return View{Status: m.Current()}
}

// Enricher reads application-side profile fields for an OAuth subject.
// found is false when the store has no record.
type Enricher interface {
	Lookup(ctx context.Context, subject string) (e identity.Enrichment, found bool, err error)
}

// Projector maps a stored session into a View.
type Projector struct {
	enricher Enricher
	logger   *slog.Logger
}

// NewProjector creates a Projector. enricher may be nil.
func NewProjector(enricher Enricher, log *slog.Logger) *Projector {
	if log == nil {
		log = logger.Discard()
	}
	return &Projector{enricher: enricher, logger: log}
}

// Project builds the view for s. A nil session projects to
// UNAUTHENTICATED. Enrichment failures are logged and the OAuth identity is
// used as is; product grants always come from the OAuth claim.
func (p *Projector) Project(ctx context.Context, s *Session) View {
	m := Projection.New()

	if s == nil {
		_, _ = m.Fire(ctx, EventMissing, nil)
		return View{Status: m.Current()}
	}

	id := p.enrich(ctx, s.Identity)
	_, _ = m.Fire(ctx, EventResolved, nil)

	v := View{
		Identity:    &id,
		Expires:     s.ExpiresAt,
		SessionID:   s.ID,
		AccessToken: s.Tokens.AccessToken,
	}

	if s.Tokens.IsInvalid() {
		_, _ = m.Fire(ctx, EventFailed, nil)
		v.Error = tokenset.RefreshAccessTokenError
	}
	v.Status = m.Current()
	return v
}

func (p *Projector) enrich(ctx context.Context, id identity.Identity) identity.Identity {
	if p.enricher == nil {
		return id.Clone()
	}

	e, found, err := p.enricher.Lookup(ctx, id.Subject)
	if err != nil {
		p.logger.WarnContext(ctx, "profile enrichment failed",
			logger.Component("session"),
			logger.Subject(id.Subject),
			logger.Error(err),
		)
		return id.Clone()
	}
	if !found {
		return id.Clone()
	}
	return id.Enrich(e)
}
