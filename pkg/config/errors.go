package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v11"
)

var (
	ErrParsingConfig   = errors.New("config.parse_failed")
	ErrConfigNotLoaded = errors.New("config.not_loaded")
	ErrNilPointer      = errors.New("config.nil_pointer")
)

// ConfigurationError lists the variables that prevent startup. It is fatal:
// callers are expected to abort initialization when they receive one.
type ConfigurationError struct {
	Missing []string
	Invalid []string
	Err     error
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 && e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// Invalid builds a ConfigurationError for variables that are set but unusable.
func Invalid(reason string, vars ...string) *ConfigurationError {
	return &ConfigurationError{Invalid: vars, Err: errors.New(reason)}
}

// fromParseError converts the aggregate error of env.Parse.
func fromParseError(err error) *ConfigurationError {
	ce := &ConfigurationError{Err: errors.Join(ErrParsingConfig, err)}

	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return ce
	}
	for _, e := range agg.Errors {
		var (
			notSet env.VarIsNotSetError
			empty  env.EmptyVarError
			parse  env.ParseError
		)
		switch {
		case errors.As(e, &notSet):
			ce.Missing = append(ce.Missing, notSet.Key)
		case errors.As(e, &empty):
			ce.Missing = append(ce.Missing, empty.Key)
		case errors.As(e, &parse):
			ce.Invalid = append(ce.Invalid, parse.Name)
		}
	}
	return ce
}
