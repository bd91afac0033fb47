package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

// Manager owns session records: it creates them after sign-in, resolves
// them into a View on every request, keeps their tokens fresh and destroys
// them on sign-out.
type Manager struct {
	store     Store
	transport Transport
	tokens    *tokenset.Manager
	projector *Projector
	maxAge    time.Duration
	now       func() time.Time
	logger    *slog.Logger
	mock      *identity.Identity

	enricher     Enricher
	tokenOptions []tokenset.Option
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxAge sets the session lifetime.
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.maxAge = d
		}
	}
}

// WithEnricher enables enrichment of projected identities.
func WithEnricher(e Enricher) Option {
	return func(m *Manager) { m.enricher = e }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTokenOptions passes options to the token lifecycle manager.
func WithTokenOptions(opts ...tokenset.Option) Option {
	return func(m *Manager) { m.tokenOptions = append(m.tokenOptions, opts...) }
}

// WithMockIdentity makes every request resolve to id as AUTHENTICATED,
// without reading the store. Development only.
func WithMockIdentity(id identity.Identity) Option {
	return func(m *Manager) {
		clone := id.Clone()
		m.mock = &clone
	}
}

// NewManager creates a Manager. refresher performs refresh grants for
// expired access tokens.
func NewManager(store Store, transport Transport, refresher tokenset.Refresher, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if transport == nil {
		return nil, ErrNoTransport
	}

	m := &Manager{
		store:     store,
		transport: transport,
		maxAge:    DefaultConfig().MaxAge,
		now:       time.Now,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.projector = NewProjector(m.enricher, m.logger)

	tokenOpts := append([]tokenset.Option{
		tokenset.WithClock(m.now),
		tokenset.WithLogger(m.logger),
		tokenset.WithUpdateHook(m.persistTokens),
	}, m.tokenOptions...)
	m.tokens = tokenset.NewManager(refresher, tokenOpts...)

	return m, nil
}

// Create stores a new session for id and tokens and sets the cookie.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, id identity.Identity, tokens tokenset.TokenSet) (*Session, error) {
	s := NewSession(id, tokens, m.maxAge, m.now())
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetID(w, s.ID, m.maxAge); err != nil {
		_ = m.store.Delete(ctx, s.ID)
		return nil, err
	}

	m.logger.InfoContext(ctx, "session created",
		logger.Component("session"),
		logger.SessionID(s.ID),
		logger.Subject(id.Subject),
	)
	return s, nil
}

// Load reads the session referenced by the request cookie.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := m.transport.GetID(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, id)
}

// Resolve projects the request's session. Expired access tokens are
// refreshed on the way; a failed refresh yields an ERROR view that still
// carries the identity.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) View {
	if m.mock != nil {
		id := m.mock.Clone()
		return View{Status: StatusAuthenticated, Identity: &id}
	}

	s, err := m.Load(ctx, r)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.ErrorContext(ctx, "failed to load session",
				logger.Component("session"),
				logger.Error(err),
			)
		}
		return m.projector.Project(ctx, nil)
	}

	tokens, err := m.tokens.Access(ctx, s.ID, s.Tokens)
	if err == nil {
		s.Tokens = tokens
	}
	return m.projector.Project(ctx, s)
}

// Destroy removes the session record and clears the cookie. It returns the
// removed session, or nil when there was none, so callers can revoke its
// tokens.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	defer func() { _ = m.transport.ClearID(w) }()

	s, err := m.Load(ctx, r)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return s, err
	}

	m.logger.InfoContext(ctx, "session destroyed",
		logger.Component("session"),
		logger.SessionID(s.ID),
		logger.Subject(s.Identity.Subject),
	)
	return s, nil
}

// persistTokens writes a refresh outcome back to the stored session. A
// session deleted in the meantime stays deleted.
func (m *Manager) persistTokens(ctx context.Context, sessionID string, ts tokenset.TokenSet) {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.ErrorContext(ctx, "failed to load session for token update",
				logger.Component("session"),
				logger.SessionID(sessionID),
				logger.Error(err),
			)
		}
		return
	}

	s.Tokens = ts
	if err := m.store.Update(ctx, s); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			m.logger.DebugContext(ctx, "session removed before refreshed tokens were stored",
				logger.Component("session"),
				logger.SessionID(sessionID),
			)
			return
		}
		m.logger.ErrorContext(ctx, "failed to persist refreshed tokens",
			logger.Component("session"),
			logger.SessionID(sessionID),
			logger.Error(err),
		)
	}
}
