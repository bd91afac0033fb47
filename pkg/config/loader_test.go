package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/config"
)

type requiredConfig struct {
	ClientID string `env:"CONFIG_TEST_CLIENT_ID,required"`
	Secret   string `env:"CONFIG_TEST_SECRET,required,notEmpty"`
	Name     string `env:"CONFIG_TEST_NAME" envDefault:"dashboard"`
}

type numericConfig struct {
	Port int `env:"CONFIG_TEST_PORT"`
}

type validatedConfig struct {
	Secret string `env:"CONFIG_TEST_VALIDATED_SECRET"`
}

func (c *validatedConfig) Validate() error {
	if len(c.Secret) < 8 {
		return config.Invalid("secret too short", "CONFIG_TEST_VALIDATED_SECRET")
	}
	return nil
}

type fileConfig struct {
	FromFile string `env:"CONFIG_TEST_FROM_FILE"`
	Quoted   string `env:"CONFIG_TEST_QUOTED"`
}

func TestLoad_MissingRequired(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_SECRET", "")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)

	var ce *config.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.ElementsMatch(t, []string{"CONFIG_TEST_CLIENT_ID", "CONFIG_TEST_SECRET"}, ce.Missing)
	assert.True(t, config.IsConfigurationError(err))
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_CLIENT_ID", "client")
	t.Setenv("CONFIG_TEST_SECRET", "secret")

	var first requiredConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "client", first.ClientID)
	assert.Equal(t, "dashboard", first.Name)

	t.Setenv("CONFIG_TEST_CLIENT_ID", "changed")

	var second requiredConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "client", second.ClientID)

	config.Reset()
	var third requiredConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "changed", third.ClientID)
}

func TestLoad_InvalidValue(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_PORT", "not-a-number")

	var cfg numericConfig
	err := config.Load(&cfg)

	var ce *config.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"Port"}, ce.Invalid)
}

func TestLoad_Validator(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_VALIDATED_SECRET", "short")

	var cfg validatedConfig
	err := config.Load(&cfg)

	var ce *config.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"CONFIG_TEST_VALIDATED_SECRET"}, ce.Invalid)
	assert.Contains(t, err.Error(), "invalid CONFIG_TEST_VALIDATED_SECRET")

	config.Reset()
	t.Setenv("CONFIG_TEST_VALIDATED_SECRET", "long-enough")
	require.NoError(t, config.Load(&cfg))
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *numericConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_PORT", "8080")

	var cfg numericConfig
	assert.NotPanics(t, func() { config.MustLoad(&cfg) })
	assert.Equal(t, 8080, cfg.Port)

	config.Reset()
	t.Setenv("CONFIG_TEST_PORT", "x")
	assert.Panics(t, func() { config.MustLoad(&numericConfig{}) })
}

func TestLoadEnv(t *testing.T) {
	config.Reset()
	unset := func() {
		_ = os.Unsetenv("CONFIG_TEST_FROM_FILE")
		_ = os.Unsetenv("CONFIG_TEST_QUOTED")
	}
	unset()
	t.Cleanup(unset)

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "file_value", cfg.FromFile)
	assert.Equal(t, "quoted value", cfg.Quoted)

	assert.Error(t, config.LoadEnv("testdata/missing.env"))
}
