package api

import (
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/message"
	"github.com/dmitrymomot/rulekit/pkg/ratelimiter"
)

// DefaultMaxUploadSize is the per-file limit above which uploads are marked
// with UploadErrIniSize (8MB).
const DefaultMaxUploadSize = 8 << 20

// DefaultMaxBodySize caps the request body (32MB).
const DefaultMaxBodySize = 32 << 20

type Option func(*Service)

// WithCatalog sets the default message catalog.
func WithCatalog(c *message.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithTranslator enables translated messages. Without it messages are
// rendered from the catalog as is.
func WithTranslator(tr *i18n.Translator) Option {
	return func(s *Service) { s.translator = tr }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.With(logger.Component("api"))
		}
	}
}

// WithMaxUploadSize sets the per-file size limit. Zero disables it.
func WithMaxUploadSize(n int64) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxUploadSize = n
		}
	}
}

func WithMaxBodySize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// WithValueEcho controls whether messages may quote submitted values.
func WithValueEcho(echo bool) Option {
	return func(s *Service) { s.valueEcho = echo }
}

// WithRateLimiter throttles POST /validate per client address.
func WithRateLimiter(l *ratelimiter.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithTrustProxy makes the client address come from proxy headers. Enable
// it only behind a proxy that sets them.
func WithTrustProxy(trust bool) Option {
	return func(s *Service) { s.trustProxy = trust }
}
