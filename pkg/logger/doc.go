// Package logger builds *slog.Logger instances for rulekit services.
//
// New returns a logger configured through Option values: output format
// (text or JSON), level, static attributes and context extractors. Records
// pass through LogHandlerDecorator, which runs the extractors against the
// record's context so request scoped values such as the request id or the
// negotiated locale show up without being passed around explicitly.
//
// attr.go holds constructors for the attribute keys used across the module
// (control, validator, locale, request_id, error) so every package names them
// the same way.
//
// Usage:
//
//	log := logger.New(
//	    logger.WithEnvironment(logger.ParseEnvironment(cfg.Env), "rulekit"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "missing validation message",
//	    logger.Control("email"),
//	    logger.Validator("email"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
