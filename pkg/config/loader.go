package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that need checks beyond the
// env tags, such as minimum secret lengths.
type Validator interface {
	Validate() error
}

type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// LoadEnv loads the given .env files into the process environment. Without
// arguments it loads .env from the working directory. Existing variables are
// never overwritten.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

// Load parses environment variables into v. The default .env file is read
// once per process, and each config type is parsed once and then served from
// cache.
//
// Missing required variables and values rejected by Validate are reported as
// a *ConfigurationError.
//
//	var cfg sso.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[typeName]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fromParseError(err)
	}
	if val, ok := any(&parsed).(Validator); ok {
		if err := val.Validate(); err != nil {
			var ce *ConfigurationError
			if errors.As(err, &ce) {
				return ce
			}
			return &ConfigurationError{Err: err}
		}
	}

	globalCache.mu.Lock()
	if existing, ok := globalCache.values[typeName]; ok {
		parsed = existing.(T)
	} else {
		globalCache.values[typeName] = parsed
	}
	globalCache.mu.Unlock()

	*v = parsed
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration.
func Reset() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

func getTypeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
