package sso

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/pkce"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

const maxErrorBody = 4 << 10

// Client talks to the SSO provider as a public OAuth client. No client
// secret is ever sent: client_id travels in the request body and PKCE
// proves possession of the authorization code.
type Client struct {
	cfg         Config
	conf        *oauth2.Config
	httpClient  *http.Client
	userinfoURL string
	revokeURL   string
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client. Its timeout is left as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for swallowed revocation failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock replaces time.Now when computing expiry timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"openid"}
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.PlaceholderEmailDomain == "" {
		cfg.PlaceholderEmailDomain = "axolutions.com"
	}

	root := base.String()
	c := &Client{
		cfg: cfg,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: "",
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   root + AuthorizePath,
				TokenURL:  root + TokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient:  &http.Client{Timeout: cfg.HTTPTimeout},
		userinfoURL: root + UserinfoPath,
		revokeURL:   root + RevokePath,
		now:         time.Now,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientID returns the configured OAuth client id.
func (c *Client) ClientID() string {
	return c.cfg.ClientID
}

// AuthorizationURL builds the authorize redirect for pair and state. Only
// the challenge is sent; the verifier stays with the caller until Exchange.
// An empty redirectURI falls back to the configured one.
func (c *Client) AuthorizationURL(pair pkce.Pair, state, redirectURI string) string {
	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", pair.Challenge),
		oauth2.SetAuthURLParam("code_challenge_method", pair.Method()),
	}
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}
	return c.conf.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code and its PKCE verifier for tokens.
func (c *Client) Exchange(ctx context.Context, code, verifier, redirectURI string) (tokenset.TokenSet, error) {
	opts := []oauth2.AuthCodeOption{oauth2.VerifierOption(verifier)}
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	tok, err := c.conf.Exchange(c.oauthContext(ctx), code, opts...)
	if err != nil {
		status, errCode, desc := retrieveFailure(err)
		return tokenset.TokenSet{}, &TokenExchangeError{
			StatusCode:  status,
			Code:        errCode,
			Description: desc,
			Err:         err,
		}
	}
	return c.toTokenSet(tok), nil
}

// Refresh performs a refresh_token grant. A response without a new refresh
// token keeps the one that was sent.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (tokenset.TokenSet, error) {
	if refreshToken == "" {
		return tokenset.TokenSet{}, &RefreshError{Err: tokenset.ErrNoRefreshToken}
	}

	src := c.conf.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		status, errCode, desc := retrieveFailure(err)
		return tokenset.TokenSet{}, &RefreshError{
			StatusCode:  status,
			Code:        errCode,
			Description: desc,
			Err:         err,
		}
	}

	ts := c.toTokenSet(tok)
	if ts.RefreshToken == "" {
		ts.RefreshToken = refreshToken
	}
	return ts, nil
}

// FetchProfile reads the userinfo endpoint with accessToken and validates
// the payload.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	if accessToken == "" {
		return Profile{}, &UserinfoError{StatusCode: http.StatusUnauthorized, Err: ErrEmptyToken}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return Profile{}, &UserinfoError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Profile{}, &UserinfoError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Profile{}, &UserinfoError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var raw userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Profile{}, errors.Join(ErrInvalidProfile, err)
	}
	return raw.validate()
}

// Revoke asks the provider to revoke token. It is best effort: any failure
// is logged as a RevocationError and otherwise ignored.
func (c *Client) Revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := c.revoke(ctx, token); err != nil {
		c.logger.WarnContext(ctx, "token revocation failed",
			logger.Component("sso"),
			logger.Error(err),
		)
	}
}

func (c *Client) revoke(ctx context.Context, token string) error {
	payload, err := json.Marshal(revokeRequest{Token: token, ClientID: c.cfg.ClientID})
	if err != nil {
		return &RevocationError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revokeURL, bytes.NewReader(payload))
	if err != nil {
		return &RevocationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RevocationError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RevocationError{StatusCode: resp.StatusCode}
	}
	return nil
}

// MapProfile converts a validated profile into an Identity.
func (c *Client) MapProfile(p Profile) (identity.Identity, error) {
	return MapProfile(p, c.cfg.PlaceholderEmailDomain)
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func (c *Client) toTokenSet(tok *oauth2.Token) tokenset.TokenSet {
	ts := tokenset.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	switch {
	case tok.ExpiresIn > 0:
		ts.ExpiresAt = tokenset.ExpiresIn(c.now(), tok.ExpiresIn)
	case !tok.Expiry.IsZero():
		at := tok.Expiry.Unix()
		ts.ExpiresAt = &at
	}
	return ts
}

// retrieveFailure extracts the provider's status and error fields.
func retrieveFailure(err error) (status int, code, description string) {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return 0, "", ""
	}
	if re.Response != nil {
		status = re.Response.StatusCode
	}
	code, description = re.ErrorCode, re.ErrorDescription
	if code == "" && len(re.Body) > 0 {
		var body tokenErrorResponse
		if json.Unmarshal(re.Body, &body) == nil {
			code, description = body.Error, body.ErrorDescription
		}
	}
	return status, code, description
}

type revokeRequest struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
