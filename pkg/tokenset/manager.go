package tokenset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
)

// Refresher exchanges a refresh token for a new TokenSet.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenSet, error)
}

// UpdateHook observes every refresh outcome, successful or not, so the owner
// of the session record can persist it.
type UpdateHook func(ctx context.Context, sessionID string, ts TokenSet)

// Manager keeps token sets valid across requests. Refresh is lazy: it happens
// when a caller reads an expired set, never on a timer.
type Manager struct {
	refresher Refresher
	group     singleflight.Group
	skew      time.Duration
	timeout   time.Duration
	window    time.Duration
	now       func() time.Time
	logger    *slog.Logger
	hooks     []UpdateHook

	mu      sync.Mutex
	settled map[string]settlement
}

// settlement remembers the outcome of spending a refresh token so callers
// still holding the pre-refresh set reuse it instead of spending it again.
type settlement struct {
	spent  string
	result TokenSet
	at     time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithSkew overrides DefaultSkew.
func WithSkew(d time.Duration) Option {
	return func(m *Manager) { m.skew = d }
}

// WithRefreshTimeout bounds a single refresh call.
func WithRefreshTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithSettleWindow sets how long a refresh outcome is reused for stale copies
// of the same token set.
func WithSettleWindow(d time.Duration) Option {
	return func(m *Manager) { m.window = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithUpdateHook registers a hook run once per refresh outcome.
func WithUpdateHook(h UpdateHook) Option {
	return func(m *Manager) {
		if h != nil {
			m.hooks = append(m.hooks, h)
		}
	}
}

// NewManager creates a Manager. It panics when refresher is nil.
func NewManager(refresher Refresher, opts ...Option) *Manager {
	if refresher == nil {
		panic("tokenset: refresher is required")
	}

	m := &Manager{
		refresher: refresher,
		skew:      DefaultSkew,
		timeout:   10 * time.Second,
		window:    30 * time.Second,
		now:       time.Now,
		logger:    logger.Discard(),
		settled:   make(map[string]settlement),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State reports the lifecycle state of ts at the manager's clock.
func (m *Manager) State(ts TokenSet) State {
	return ts.State(m.now(), m.skew)
}

// Access returns a usable view of ts for sessionID.
//
// Fresh and invalid sets are returned unchanged. An expired set without a
// refresh token is tagged RefreshAccessTokenError without any network call.
// Otherwise a single refresh per session is performed and shared by every
// concurrent caller; a failed refresh returns the stale tokens tagged with
// RefreshAccessTokenError. The returned error is only ever the caller's
// context error, in which case ts is returned unchanged.
func (m *Manager) Access(ctx context.Context, sessionID string, ts TokenSet) (TokenSet, error) {
	now := m.now()
	if ts.State(now, m.skew) != StateExpired {
		return ts, nil
	}

	if !ts.HasRefreshToken() {
		m.logger.WarnContext(ctx, "access token expired and cannot be refreshed",
			logger.Component("tokenset"),
			logger.SessionID(sessionID),
			logger.State(string(StateInvalid)),
			logger.Error(ErrNoRefreshToken),
		)
		return ts.Invalidated(), nil
	}

	if result, ok := m.lookupSettled(sessionID, ts.RefreshToken, now); ok {
		return result, nil
	}

	ch := m.group.DoChan(sessionID, func() (any, error) {
		return m.refresh(context.WithoutCancel(ctx), sessionID, ts), nil
	})

	select {
	case res := <-ch:
		return res.Val.(TokenSet), nil
	case <-ctx.Done():
		return ts, ctx.Err()
	}
}

func (m *Manager) refresh(ctx context.Context, sessionID string, ts TokenSet) TokenSet {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	machine := Lifecycle.At(StateExpired)
	state, err := machine.Fire(ctx, EventRefresh, nil)
	if err != nil {
		m.logger.ErrorContext(ctx, "token refresh not started",
			logger.Component("tokenset"),
			logger.SessionID(sessionID),
			logger.Error(err),
		)
		return ts.Invalidated()
	}

	start := time.Now()
	refreshed, err := m.refresher.Refresh(ctx, ts.RefreshToken)
	if err == nil {
		state, err = machine.Fire(ctx, EventRefreshed, refreshed)
	}
	if err != nil {
		state, _ = machine.Fire(ctx, EventFail, err)
	}

	var result TokenSet
	switch state {
	case StateFresh:
		result = ts.Merge(refreshed)
		m.logger.DebugContext(ctx, "token refreshed",
			logger.Component("tokenset"),
			logger.SessionID(sessionID),
			logger.State(string(state)),
			logger.Duration(time.Since(start)),
		)
		if result.ExpiresAt == nil {
			m.logger.WarnContext(ctx, "refreshed token has no expiry and will not be refreshed again",
				logger.Component("tokenset"),
				logger.SessionID(sessionID),
			)
		}
	default:
		result = ts.Invalidated()
		m.logger.ErrorContext(ctx, "token refresh failed",
			logger.Component("tokenset"),
			logger.SessionID(sessionID),
			logger.State(string(state)),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
	}

	m.settle(sessionID, ts.RefreshToken, result)

	for _, hook := range m.hooks {
		hook(ctx, sessionID, result)
	}
	return result
}

func (m *Manager) lookupSettled(sessionID, refreshToken string, now time.Time) (TokenSet, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.settled[sessionID]
	if !ok || s.spent != refreshToken || now.Sub(s.at) > m.window {
		return TokenSet{}, false
	}
	return s.result, true
}

func (m *Manager) settle(sessionID, spent string, result TokenSet) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.settled {
		if now.Sub(s.at) > m.window {
			delete(m.settled, id)
		}
	}
	m.settled[sessionID] = settlement{spent: spent, result: result, at: now}
}
