package session

import "time"

// Config holds session settings.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	MaxAge          time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix     string        `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// DefaultConfig returns the defaults used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		CookieName:      "__session",
		MaxAge:          30 * 24 * time.Hour,
		Store:           StoreMemory,
		RedisPrefix:     "session:",
		CleanupInterval: 5 * time.Minute,
	}
}
