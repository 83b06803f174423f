package rules

import (
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/message"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type config struct {
	library   *validator.Library
	formatter *message.Formatter
	logger    *slog.Logger
	withValue bool
}

func newConfig(opts []Option) *config {
	c := &config{
		library:   validator.Default(),
		formatter: message.NewFormatter(),
		logger:    logger.Discard(),
		withValue: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Set or a Form.
type Option func(*config)

// WithLibrary sets the validator library. Default is validator.Default().
func WithLibrary(l *validator.Library) Option {
	return func(c *config) {
		if l != nil {
			c.library = l
		}
	}
}

// WithFormatter sets the message formatter.
func WithFormatter(f *message.Formatter) Option {
	return func(c *config) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithLogger provides a logger for validation diagnostics.
// If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithValueEcho controls whether messages may include submitted values
// (%value and control references). Enabled by default.
func WithValueEcho(echo bool) Option {
	return func(c *config) {
		c.withValue = echo
	}
}
