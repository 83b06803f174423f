package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the part of a multipart body kept in memory (10MB).
const DefaultMaxMemory = 10 << 20

// MultipartJSON decodes the JSON document sent as the form value part of a
// multipart/form-data request. The files of the request stay available in
// r.MultipartForm for later binders.
func MultipartJSON(part string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch mt := MediaType(r); mt {
		case "":
			return fmt.Errorf("%w: expected multipart/form-data", ErrMissingContentType)
		case "multipart/form-data":
		default:
			return fmt.Errorf("%w: got %s, expected multipart/form-data", ErrUnsupportedMediaType, mt)
		}

		if r.MultipartForm == nil {
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
		}
		values := r.MultipartForm.Value[part]
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			return fmt.Errorf("%w: %q", ErrMissingPart, part)
		}
		return DecodeJSON(strings.NewReader(values[0]), v)
	}
}
