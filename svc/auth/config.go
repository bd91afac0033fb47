package auth

import (
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/config"
)

const (
	FlowStoreCookie = "cookie"
	FlowStoreRedis  = "redis"

	DefaultFlowCookie = "__auth_flow"
)

type Config struct {
	FlowTTL         time.Duration `env:"AUTH_FLOW_TTL" envDefault:"10m"`
	FlowStore       string        `env:"AUTH_FLOW_STORE" envDefault:"cookie"`
	FlowCookieName  string        `env:"AUTH_FLOW_COOKIE" envDefault:"__auth_flow"`
	FlowRedisPrefix string        `env:"AUTH_FLOW_REDIS_PREFIX" envDefault:"auth:flow:"`
	RevokeTimeout   time.Duration `env:"AUTH_REVOKE_TIMEOUT" envDefault:"10s"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.FlowStore != FlowStoreCookie && c.FlowStore != FlowStoreRedis {
		return config.Invalid("must be cookie or redis", "AUTH_FLOW_STORE")
	}
	if c.FlowTTL <= 0 {
		return config.Invalid("must be positive", "AUTH_FLOW_TTL")
	}
	return nil
}
