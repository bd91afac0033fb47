package sso

import "time"

// Endpoint path suffixes appended to Config.BaseURL.
const (
	AuthorizePath = "/api/oauth/authorize"
	TokenPath     = "/api/oauth/token"
	UserinfoPath  = "/api/oauth/userinfo"
	RevokePath    = "/api/oauth/revoke"
)

// Config holds the SSO provider settings.
type Config struct {
	BaseURL                string        `env:"SSO_BASE_URL" envDefault:"https://sso.axolutions.com"`
	ClientID               string        `env:"SSO_CLIENT_ID,required"`
	RedirectURL            string        `env:"SSO_REDIRECT_URL"`
	Scopes                 []string      `env:"SSO_SCOPES" envSeparator:"," envDefault:"openid"`
	HTTPTimeout            time.Duration `env:"SSO_HTTP_TIMEOUT" envDefault:"10s"`
	PlaceholderEmailDomain string        `env:"SSO_PLACEHOLDER_EMAIL_DOMAIN" envDefault:"axolutions.com"`
}
