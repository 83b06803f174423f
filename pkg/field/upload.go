package field

import (
	"github.com/dmitrymomot/rulekit/pkg/upload"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Upload is a file input holding one file or, when multiple, a list.
type Upload struct {
	*Field
	multiple bool
	files    []*upload.File
}

// NewUpload returns a file input.
func NewUpload(form *Form, name, caption string, multiple bool) *Upload {
	return &Upload{Field: New(form, name, caption), multiple: multiple}
}

// Multiple reports whether the input accepts several files.
func (u *Upload) Multiple() bool { return u.multiple }

// SetFiles replaces the received files. A single-file input keeps the
// first one; nil entries are dropped.
func (u *Upload) SetFiles(files ...*upload.File) *Upload {
	u.files = u.files[:0:0]
	for _, f := range files {
		if f == nil {
			continue
		}
		u.files = append(u.files, f)
		if !u.multiple {
			break
		}
	}
	return u
}

// Files returns the received files.
func (u *Upload) Files() []*upload.File { return u.files }

// Value is a *upload.File for single inputs (nil without a file) and a
// []*upload.File for multiple ones.
func (u *Upload) Value() any {
	if u.multiple {
		return u.files
	}
	if len(u.files) == 0 {
		return nil
	}
	return u.files[0]
}

// SetValue accepts *upload.File or []*upload.File. Other values are
// ignored; validators never normalize files.
func (u *Upload) SetValue(v any) {
	switch t := v.(type) {
	case *upload.File:
		u.SetFiles(t)
	case []*upload.File:
		u.SetFiles(t...)
	case nil:
		u.files = nil
	}
}

// IsFilled reports whether at least one file was actually sent.
func (u *Upload) IsFilled() bool {
	for _, f := range u.files {
		if f.ErrorCode() != validator.UploadErrNoFile {
			return true
		}
	}
	return false
}

// IsOK reports whether every sent file arrived without an upload error.
func (u *Upload) IsOK() bool {
	for _, f := range u.files {
		if code := f.ErrorCode(); code != validator.UploadErrOK && code != validator.UploadErrNoFile {
			return false
		}
	}
	return true
}
