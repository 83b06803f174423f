package i18n

import "errors"

// Cancellation errors are kept apart from parse and read errors so callers
// can tell a timeout from a broken translation file.
var (
	ErrNilAdapter        = errors.New("translation adapter is nil")
	ErrEmptyLanguageCode = errors.New("empty language code")
	ErrNilLanguageMap    = errors.New("nil translations map for language")

	ErrParsingCancelled  = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrInvalidStructure  = errors.New("invalid translation structure")

	ErrLoadingCancelled   = errors.New("loading translations cancelled")
	ErrFailedToReadFile   = errors.New("failed to read translation file")
	ErrFailedToParseFile  = errors.New("failed to parse translation file")
	ErrEmptyFile          = errors.New("translation file is empty")
	ErrFailedToReadDir    = errors.New("failed to read translation directory")
	ErrNoTranslationFiles = errors.New("no valid translation files found")

	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")
)
