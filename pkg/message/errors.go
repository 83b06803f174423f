package message

import "errors"

// Catalog loading errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported catalog file format")
	ErrFailedToReadFile  = errors.New("failed to read catalog file")
	ErrFailedToParseFile = errors.New("failed to parse catalog file")
	ErrLoadingCancelled  = errors.New("loading catalog cancelled")
)
