// Package binder decodes HTTP requests into Go values.
//
// JSON reads a strict application/json body, MultipartJSON reads a JSON
// document carried in one part of a multipart/form-data body and Query maps
// URL parameters onto struct fields. All binders share the
// func(*http.Request, any) error shape and report failures wrapped around
// the sentinels in errors.go.
package binder
