package upload

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// DefaultMaxMemory is the part of a multipart body kept in memory (10MB);
// the rest is spooled to temporary files.
const DefaultMaxMemory = 10 << 20

// FromRequest returns the files posted under field. Files larger than
// maxSize (when positive) are returned with UploadErrIniSize so the
// fileSize validator rejects them. A request without files for the field
// yields an empty slice.
func FromRequest(r *http.Request, field string, maxSize int64) ([]*File, error) {
	if err := parseMultipartForm(r); err != nil {
		return nil, err
	}
	return fromHeaders(r.MultipartForm.File[field], maxSize), nil
}

// AllFromRequest returns the files of every field.
func AllFromRequest(r *http.Request, maxSize int64) (map[string][]*File, error) {
	if err := parseMultipartForm(r); err != nil {
		return nil, err
	}
	out := make(map[string][]*File, len(r.MultipartForm.File))
	for field, headers := range r.MultipartForm.File {
		out[field] = fromHeaders(headers, maxSize)
	}
	return out, nil
}

func fromHeaders(headers []*multipart.FileHeader, maxSize int64) []*File {
	files := make([]*File, 0, len(headers))
	for _, fh := range headers {
		if fh == nil {
			continue
		}
		f := New(fh)
		switch {
		case fh.Filename == "" && fh.Size == 0:
			f = Failed("", validator.UploadErrNoFile)
		case maxSize > 0 && fh.Size > maxSize:
			f.code = validator.UploadErrIniSize
		}
		files = append(files, f)
	}
	return files
}

func parseMultipartForm(r *http.Request) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return ErrNotMultipart
	}
	if r.MultipartForm != nil {
		return nil
	}
	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
		return errors.Join(ErrFailedToParseForm, err)
	}
	return nil
}
