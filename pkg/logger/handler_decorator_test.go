package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

type localeKey struct{}

func localeExtractor(ctx context.Context) (slog.Attr, bool) {
	lang, ok := ctx.Value(localeKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Locale(lang), true
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer, extractors ...logger.ContextExtractor) *slog.Logger {
		return slog.New(logger.NewLogHandlerDecorator(slog.NewTextHandler(buf, nil), extractors...))
	}
	ctx := context.WithValue(context.Background(), localeKey{}, "cs")

	t.Run("adds extracted attributes", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, localeExtractor, nil).InfoContext(ctx, "form validated")
		assert.Contains(t, buf.String(), "locale=cs")
	})

	t.Run("explicit attribute wins", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, localeExtractor).InfoContext(ctx, "form validated", logger.Locale("de"))
		assert.Equal(t, 1, strings.Count(buf.String(), "locale="))
		assert.Contains(t, buf.String(), "locale=de")
	})

	t.Run("WithAttrs key wins", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, localeExtractor).With(logger.Locale("en")).InfoContext(ctx, "form validated")
		assert.Equal(t, 1, strings.Count(buf.String(), "locale="))
		assert.Contains(t, buf.String(), "locale=en")
	})

	t.Run("group gets its own attributes", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, localeExtractor).With(logger.Locale("en")).WithGroup("form").InfoContext(ctx, "form validated")
		assert.Contains(t, buf.String(), "locale=en")
		assert.Contains(t, buf.String(), "form.locale=cs")
	})

	t.Run("no extractors", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf).InfoContext(ctx, "form validated", logger.Control("email"))
		assert.Contains(t, buf.String(), "control=email")
		assert.NotContains(t, buf.String(), "locale=")
	})
}
