// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - the default .env file is loaded once per process, if present;
//   - each struct type is parsed from its env tags once and then cached;
//   - structs implementing Validator get an extra check after parsing.
//
// Any failure is returned as a *ConfigurationError naming the missing or
// invalid variables. Configuration errors are fatal: the service refuses to
// start rather than run with a partial setup.
//
//	type Config struct {
//		ClientID string `env:"SSO_CLIENT_ID,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err // *config.ConfigurationError{Missing: ["SSO_CLIENT_ID"]}
//	}
package config
