// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a request value decoded by one or more binders and
// returns a Response. Binding and rendering errors go through an
// ErrorHandler, which by default writes the JSON envelope:
//
//	{"error": {"code": "validation_error", "message": "...", "details": {"email": ["..."]}}}
//
// HTTPError values choose the status code; rules.ValidationErrors map to
// 422 with per-field messages.
package handler
