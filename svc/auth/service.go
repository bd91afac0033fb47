package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/pkce"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
)

// CallbackPath is where the provider sends the browser back.
const CallbackPath = "/auth/callback"

// Service runs the two-phase PKCE sign-in and sign-out.
type Service struct {
	provider ProviderAdapter
	sessions SessionManager
	flows    FlowStore
	logins   LoginRecorder

	baseURL       *url.URL
	redirectURI   string
	flowTTL       time.Duration
	revokeTimeout time.Duration

	logger *slog.Logger
	now    func() time.Time

	revocations sync.WaitGroup
}

type Option func(*Service)

// WithRedirectURI overrides the callback URL registered with the provider.
// It defaults to the base URL joined with CallbackPath.
func WithRedirectURI(uri string) Option {
	return func(s *Service) {
		if uri != "" {
			s.redirectURI = uri
		}
	}
}

func WithFlowTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.flowTTL = d
		}
	}
}

func WithRevokeTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.revokeTimeout = d
		}
	}
}

// WithLoginRecorder stamps the user store on every sign-in.
func WithLoginRecorder(r LoginRecorder) Option {
	return func(s *Service) { s.logins = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the flow. baseURL is the dashboard's public origin.
func NewService(provider ProviderAdapter, sessions SessionManager, flows FlowStore, baseURL string, opts ...Option) (*Service, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	s := &Service{
		provider:      provider,
		sessions:      sessions,
		flows:         flows,
		baseURL:       base,
		redirectURI:   base.String() + CallbackPath,
		flowTTL:       10 * time.Minute,
		revokeTimeout: 10 * time.Second,
		logger:        logger.Discard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseURL returns the dashboard origin used for redirects.
func (s *Service) BaseURL() *url.URL {
	u := *s.baseURL
	return &u
}

// Initiate starts a sign-in attempt: it persists a fresh PKCE verifier and
// state, and returns the provider's authorize URL.
func (s *Service) Initiate(ctx context.Context, w http.ResponseWriter, callbackURL string) (string, error) {
	pair, err := pkce.GeneratePair()
	if err != nil {
		return "", err
	}
	state, err := pkce.GenerateVerifier()
	if err != nil {
		return "", err
	}

	f := Flow{
		State:       state,
		Verifier:    pair.Verifier,
		CallbackURL: SanitizeRedirect(callbackURL, s.baseURL),
		RedirectURI: s.redirectURI,
		CreatedAt:   s.now().UTC(),
		Stage:       StageInitiated,
	}
	if err := s.flows.Save(ctx, w, f); err != nil {
		return "", fmt.Errorf("failed to save sign-in flow: %w", err)
	}

	s.logger.DebugContext(ctx, "sign-in initiated",
		logger.Component("auth"),
		logger.Provider(ProviderID),
		logger.State(string(f.Stage)),
	)
	return s.provider.AuthorizationURL(pair, state, f.RedirectURI), nil
}

// Callback holds the query parameters of the provider redirect.
type Callback struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// ParseCallback reads a callback query string.
func ParseCallback(q url.Values) Callback {
	return Callback{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}
}

// Result is a completed sign-in.
type Result struct {
	Session    *session.Session
	RedirectTo string
}

// Complete finishes a sign-in attempt. The flow is consumed once its state
// matches, so a callback can succeed at most once.
func (s *Service) Complete(ctx context.Context, w http.ResponseWriter, r *http.Request, cb Callback) (Result, error) {
	f, err := s.flows.Load(ctx, r, cb.State)
	if err != nil {
		if errors.Is(err, ErrFlowNotFound) {
			return Result{}, errors.Join(ErrInvalidState, err)
		}
		return Result{}, err
	}

	m := FlowLifecycle.At(f.Stage)
	stage, err := m.Fire(ctx, EventCallback, f)
	if err != nil {
		return Result{}, errors.Join(ErrInvalidState, err)
	}
	f.Stage = stage

	if cb.State == "" || subtle.ConstantTimeCompare([]byte(f.State), []byte(cb.State)) != 1 {
		s.logger.WarnContext(ctx, "sign-in state mismatch", logger.Component("auth"))
		return Result{}, ErrInvalidState
	}

	if err := s.flows.Delete(ctx, w, f); err != nil {
		if errors.Is(err, ErrFlowConsumed) {
			return Result{}, errors.Join(ErrInvalidState, err)
		}
		return Result{}, err
	}
	if f.Expired(s.now(), s.flowTTL) {
		return Result{}, errors.Join(ErrInvalidState, ErrFlowExpired)
	}

	if cb.Error != "" {
		pe := &ProviderError{Code: cb.Error, Description: cb.ErrorDescription}
		s.logger.WarnContext(ctx, "provider rejected sign-in",
			logger.Component("auth"),
			logger.Provider(ProviderID),
			logger.Error(pe),
		)
		return Result{}, pe
	}
	if cb.Code == "" {
		return Result{}, ErrMissingCode
	}

	tokens, err := s.provider.Exchange(ctx, cb.Code, f.Verifier, f.RedirectURI)
	if err != nil {
		s.logger.ErrorContext(ctx, "code exchange failed",
			logger.Component("auth"),
			logger.Provider(ProviderID),
			logger.Error(err),
		)
		return Result{}, err
	}

	profile, err := s.provider.FetchProfile(ctx, tokens.AccessToken)
	if err != nil {
		s.logger.ErrorContext(ctx, "userinfo request failed",
			logger.Component("auth"),
			logger.Provider(ProviderID),
			logger.Error(err),
		)
		return Result{}, err
	}

	id, err := s.provider.MapProfile(profile)
	if err != nil {
		return Result{}, err
	}

	sess, err := s.sessions.Create(ctx, w, id, tokens)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create session: %w", err)
	}

	if f.Stage, err = m.Fire(ctx, EventExchange, f); err != nil {
		return Result{}, err
	}

	if s.logins != nil {
		if err := s.logins.RecordLogin(ctx, id.Subject, s.now()); err != nil {
			s.logger.WarnContext(ctx, "failed to record login",
				logger.Component("auth"),
				logger.Subject(id.Subject),
				logger.Error(err),
			)
		}
	}

	s.logger.InfoContext(ctx, "sign-in completed",
		logger.Component("auth"),
		logger.Provider(ProviderID),
		logger.Subject(id.Subject),
		logger.SessionID(sess.ID),
		logger.State(string(f.Stage)),
	)
	return Result{Session: sess, RedirectTo: f.CallbackURL}, nil
}

// SignOut removes the local session and revokes its access token in the
// background. Revocation outcomes are logged by the provider adapter.
func (s *Service) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sess, err := s.sessions.Destroy(ctx, w, r)
	if err != nil {
		return err
	}
	if sess == nil || sess.Tokens.AccessToken == "" {
		return nil
	}

	token := sess.Tokens.AccessToken
	s.revocations.Add(1)
	go func() {
		defer s.revocations.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.revokeTimeout)
		defer cancel()
		s.provider.Revoke(ctx, token)
	}()
	return nil
}

// Wait blocks until background revocations finish.
func (s *Service) Wait() {
	s.revocations.Wait()
}
