package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse         = errors.New("handler returned nil response")
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")
)

// HTTPError carries a status code and a stable machine readable key. Detail,
// when set, is shown to the client instead of the status text.
type HTTPError struct {
	Code   int
	Key    string
	Detail string
	Err    error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e HTTPError) Unwrap() error { return e.Err }

// Is matches HTTPErrors by code and key, so wrapped copies still match the
// sentinels below.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Code == e.Code && t.Key == e.Key
}

// Wrap returns a copy of e with a client facing detail and the cause.
func (e HTTPError) Wrap(detail string, cause error) HTTPError {
	e.Detail = detail
	e.Err = cause
	return e
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessableEntity   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests       = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable    = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)
