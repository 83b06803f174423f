package i18n

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

type localeContextKey struct{}

// SetLocale stores the negotiated language code in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the language stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
		return locale
	}
	return DefaultLanguage
}

// LoggerExtractor exposes the request language to logger.WithContextExtractors.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		locale, ok := ctx.Value(localeContextKey{}).(string)
		if !ok || locale == "" {
			return slog.Attr{}, false
		}
		return logger.Locale(locale), true
	}
}
