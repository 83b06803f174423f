package upload

import "errors"

var (
	ErrNilFileHeader     = errors.New("file header is nil")
	ErrFailedToOpenFile  = errors.New("failed to open file")
	ErrFailedToReadFile  = errors.New("failed to read file")
	ErrFailedToHashFile  = errors.New("failed to hash file")
	ErrFailedToParseForm = errors.New("failed to parse multipart form")
	ErrNotMultipart      = errors.New("request is not multipart/form-data")
)
