package i18n

import (
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used for unknown languages and as
// the fallback for messages missing in the requested one.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether T and N return the key itself for a
// missing translation. Default is true. Locale.Translate always falls back
// to the message.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l.With(logger.Component("i18n"))
		}
	}
}

// WithMissingTranslationsLogging logs every missing translation at warn
// level. Off by default.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// WithNoLogging disables all logging.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = logger.Discard()
		t.missingLogMode = false
	}
}
