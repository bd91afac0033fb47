package userdata

import (
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/config"
)

const (
	DriverNone     = "none"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Driver        string        `env:"USERDATA_DRIVER" envDefault:"none"`
	Collection    string        `env:"USERDATA_COLLECTION" envDefault:"users"`
	LookupTimeout time.Duration `env:"USERDATA_LOOKUP_TIMEOUT" envDefault:"2s"`
	CacheSize     int           `env:"USERDATA_CACHE_SIZE" envDefault:"1024"`
	CacheTTL      time.Duration `env:"USERDATA_CACHE_TTL" envDefault:"1m"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverNone, DriverPostgres, DriverMongo:
	default:
		return config.Invalid("must be one of none, postgres, mongo", "USERDATA_DRIVER")
	}
	if c.CacheSize < 0 {
		return config.Invalid("must not be negative", "USERDATA_CACHE_SIZE")
	}
	return nil
}

// Cached reports whether lookups go through an in-process cache.
func (c Config) Cached() bool {
	return c.CacheSize > 0 && c.CacheTTL > 0
}

// Enabled reports whether a datastore is configured.
func (c Config) Enabled() bool {
	return c.Driver != "" && c.Driver != DriverNone
}
