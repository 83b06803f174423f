package main

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Config is read from RULEKIT_ prefixed environment variables, e.g.
// RULEKIT_HTTP_ADDR or RULEKIT_DEFAULT_LANGUAGE.
type Config struct {
	httpserver.Config

	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	// TranslationsPath is a translation file or a directory of them. The
	// bundled translations are used when it is empty.
	TranslationsPath string `env:"TRANSLATIONS_PATH"`
	// CatalogPath overrides default message templates from a YAML or JSON
	// file.
	CatalogPath string `env:"CATALOG_PATH"`

	LogMissingTranslations bool `env:"LOG_MISSING_TRANSLATIONS"`

	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"8388608"`
	MaxBodySize   int64 `env:"MAX_BODY_SIZE" envDefault:"33554432"`
	EchoValues    bool  `env:"ECHO_VALUES" envDefault:"true"`

	// RateLimit is the number of validations a client may run per minute.
	// Zero disables throttling.
	RateLimit  int  `env:"RATE_LIMIT" envDefault:"0"`
	RateBurst  int  `env:"RATE_BURST"`
	TrustProxy bool `env:"TRUST_PROXY"`
}

func (c *Config) Validate() error {
	var errs []error
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	switch logger.Format(c.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", c.LogFormat))
	}
	if c.DefaultLanguage == "" {
		errs = append(errs, errors.New("default language is required"))
	}
	if c.MaxUploadSize < 0 {
		errs = append(errs, errors.New("max upload size must not be negative"))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate limit and burst must not be negative"))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, errors.New("max body size must be positive"))
	}
	return errors.Join(errs...)
}

// loggerOptions turns the logging settings into logger options. The
// environment picks the defaults; explicit level and format win.
func (c *Config) loggerOptions() []logger.Option {
	opts := []logger.Option{logger.WithEnvironment(logger.ParseEnvironment(c.Environment), "rulekit")}
	if c.LogLevel != "" {
		level, _ := logger.ParseLevel(c.LogLevel)
		opts = append(opts, logger.WithLevel(level))
	}
	if c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(c.LogFormat)))
	}
	return opts
}
