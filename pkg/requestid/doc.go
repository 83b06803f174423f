// Package requestid tags every HTTP request with a correlation id.
//
// The middleware reuses a well formed X-Request-ID from the client or
// generates a UUIDv7, stores it in the request context and echoes it back:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// With logger.WithContextExtractors(requestid.LoggerExtractor()) every
// record logged with the request context carries the id.
package requestid
