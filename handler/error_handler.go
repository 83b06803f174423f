package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/requestid"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

// NewErrorHandler renders errors as JSON. Client errors are logged at warn
// level, server errors at error level, validation failures not at all.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("error_handler"))

	return func(w http.ResponseWriter, r *http.Request, err error) {
		resp := JSONError(err)
		if !rules.IsValidationError(err) {
			level := slog.LevelError
			var httpErr HTTPError
			if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			log.LogAttrs(r.Context(), level, "request error",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(err),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}
		if renderErr := resp.Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
