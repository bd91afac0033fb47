package main

import (
	"github.com/axolutions/linkbio-dashboard/pkg/audit"
	"github.com/axolutions/linkbio-dashboard/pkg/config"
	"github.com/axolutions/linkbio-dashboard/pkg/environment"
	"github.com/axolutions/linkbio-dashboard/pkg/httpserver"
	"github.com/axolutions/linkbio-dashboard/pkg/ratelimiter"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
	"github.com/axolutions/linkbio-dashboard/pkg/sso"
	"github.com/axolutions/linkbio-dashboard/pkg/userdata"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

const minSecretLength = 32

// AppConfig holds process-wide settings.
type AppConfig struct {
	Name              string `env:"APP_NAME" envDefault:"linkbio-dashboard"`
	Env               string `env:"APP_ENV" envDefault:"development"`
	BaseURL           string `env:"APP_BASE_URL" envDefault:"http://localhost:3002"`
	SessionSecret     string `env:"SESSION_SECRET,required,notEmpty"`
	MockedAuth        bool   `env:"MOCKED_AUTH" envDefault:"false"`
	MockedAuthFixture string `env:"MOCKED_AUTH_FIXTURE"` // empty uses the built-in identity
}

// Validate implements config.Validator.
func (c *AppConfig) Validate() error {
	if len(c.SessionSecret) < minSecretLength {
		return config.Invalid("must be at least 32 characters", "SESSION_SECRET")
	}
	if c.MockedAuth && c.Environment().IsProduction() {
		return &config.ConfigurationError{Invalid: []string{"MOCKED_AUTH"}, Err: auth.ErrMockedAuthForbidden}
	}
	return nil
}

func (c AppConfig) Environment() environment.Environment {
	return environment.Parse(c.Env)
}

// Mocked reports whether requests run as the fixture identity. Only
// development honours MOCKED_AUTH.
func (c AppConfig) Mocked() bool {
	return c.MockedAuth && c.Environment().IsDevelopment()
}

// RateLimitConfig throttles the sign-in and callback endpoints per client IP.
type RateLimitConfig struct {
	Enabled     bool               `env:"AUTH_RATE_LIMIT_ENABLED" envDefault:"true"`
	Store       string             `env:"AUTH_RATE_LIMIT_STORE" envDefault:"memory"`
	RedisPrefix string             `env:"AUTH_RATE_LIMIT_REDIS_PREFIX" envDefault:"ratelimit:auth:"`
	Bucket      ratelimiter.Config `envPrefix:"AUTH_RATE_LIMIT_"`
}

// Validate implements config.Validator.
func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Store != session.StoreMemory && c.Store != session.StoreRedis {
		return config.Invalid("must be memory or redis", "AUTH_RATE_LIMIT_STORE")
	}
	if err := c.Bucket.Validate(); err != nil {
		return &config.ConfigurationError{
			Invalid: []string{"AUTH_RATE_LIMIT_CAPACITY", "AUTH_RATE_LIMIT_REFILL_RATE", "AUTH_RATE_LIMIT_REFILL_INTERVAL"},
			Err:     err,
		}
	}
	return nil
}

// settings is every config section the service reads.
type settings struct {
	App       AppConfig
	SSO       sso.Config
	Session   session.Config
	Auth      auth.Config
	UserData  userdata.Config
	Audit     audit.Config
	RateLimit RateLimitConfig
	HTTP      httpserver.Config
}

func loadSettings() (settings, error) {
	var (
		s   settings
		err error
	)
	if s.App, err = loadSection[AppConfig]("app"); err != nil {
		return s, err
	}
	if s.SSO, err = loadSection[sso.Config]("sso"); err != nil {
		return s, err
	}
	if s.Session, err = loadSection[session.Config]("session"); err != nil {
		return s, err
	}
	if s.Auth, err = loadSection[auth.Config]("auth"); err != nil {
		return s, err
	}
	if s.UserData, err = loadSection[userdata.Config]("userdata"); err != nil {
		return s, err
	}
	if s.Audit, err = loadSection[audit.Config]("audit"); err != nil {
		return s, err
	}
	if s.RateLimit, err = loadSection[RateLimitConfig]("rate limit"); err != nil {
		return s, err
	}
	if s.HTTP, err = loadSection[httpserver.Config]("http"); err != nil {
		return s, err
	}
	return s, nil
}

func (s settings) needsRedis() bool {
	return s.Session.Store == session.StoreRedis ||
		s.Auth.FlowStore == auth.FlowStoreRedis ||
		(s.RateLimit.Enabled && s.RateLimit.Store == session.StoreRedis)
}

func (s settings) needsMongo() bool {
	return s.UserData.Driver == userdata.DriverMongo || s.Audit.Sink == audit.SinkMongo
}
