package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

type defaultsConfig struct {
	Addr    string        `env:"CFGTEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"5s"`
	Langs   []string      `env:"CFGTEST_LANGS" envDefault:"en,cs"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg, config.WithoutCache()))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"en", "cs"}, cfg.Langs)
}

type cachedConfig struct {
	Value string `env:"CFGTEST_CACHED"`
}

func TestLoad_Cache(t *testing.T) {
	config.Reset()
	t.Setenv("CFGTEST_CACHED", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Value)

	t.Setenv("CFGTEST_CACHED", "second")
	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value, "cached per type")

	var c cachedConfig
	require.NoError(t, config.Load(&c, config.WithoutCache()))
	assert.Equal(t, "second", c.Value)

	config.Reset()
	var d cachedConfig
	require.NoError(t, config.Load(&d))
	assert.Equal(t, "second", d.Value)
}

type prefixedConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("RULEKIT_LOG_LEVEL", "debug")
	t.Setenv("LOG_LEVEL", "error")

	var prefixed, plain prefixedConfig
	require.NoError(t, config.Load(&prefixed, config.WithPrefix("RULEKIT_"), config.WithoutCache()))
	require.NoError(t, config.Load(&plain, config.WithoutCache()))
	assert.Equal(t, "debug", prefixed.Level)
	assert.Equal(t, "error", plain.Level)
}

type requiredConfig struct {
	Secret string `env:"CFGTEST_REQUIRED_SECRET,required"`
}

func TestLoad_Errors(t *testing.T) {
	var req requiredConfig
	err := config.Load(&req, config.WithoutCache())
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.ErrorIs(t, config.Load[requiredConfig](nil), config.ErrNilPointer)

	err = config.Load(&req, config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() { config.MustLoad(&req, config.WithoutCache()) })
}

type validatedConfig struct {
	MaxUpload int64 `env:"CFGTEST_MAX_UPLOAD" envDefault:"1024"`
}

func (c *validatedConfig) Validate() error {
	if c.MaxUpload <= 0 {
		return errors.New("max upload must be positive")
	}
	return nil
}

func TestLoad_Validate(t *testing.T) {
	t.Setenv("CFGTEST_MAX_UPLOAD", "-1")

	var cfg validatedConfig
	err := config.Load(&cfg, config.WithoutCache())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "max upload must be positive")

	t.Setenv("CFGTEST_MAX_UPLOAD", "2048")
	require.NoError(t, config.Load(&cfg, config.WithoutCache()))
	assert.Equal(t, int64(2048), cfg.MaxUpload)
}

type fileConfig struct {
	FromFile string `env:"CFGTEST_FROM_FILE"`
	Override string `env:"CFGTEST_FILE_OVERRIDE"`
}

func TestLoad_EnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_FROM_FILE=file\nCFGTEST_FILE_OVERRIDE=file\n"), 0o600))
	t.Setenv("CFGTEST_FILE_OVERRIDE", "process")
	t.Cleanup(func() { os.Unsetenv("CFGTEST_FROM_FILE") })

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path), config.WithoutCache()))
	assert.Equal(t, "file", cfg.FromFile)
	assert.Equal(t, "process", cfg.Override, "process environment wins over the file")
}
