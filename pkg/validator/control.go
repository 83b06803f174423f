package validator

// Control is the capability set the engine needs from a form control.
// Concrete widgets live outside this package.
type Control interface {
	Value() any
	SetValue(v any)
	IsFilled() bool
	Name() string
	// Form returns the owning form. It may return nil for detached controls.
	Form() Form
}

// Form exposes the owning form's translator, which may be nil.
type Form interface {
	Translator() Translator
}

// Translator maps a message to its localized form. The optional count selects
// a plural form.
type Translator interface {
	Translate(message string, count ...int) string
}

// Captioned is implemented by controls that carry a human-readable label.
type Captioned interface {
	Caption() string
}

// Translatable is implemented by controls that translate their own texts.
type Translatable interface {
	Translate(text string, count ...int) string
}

// RuleSet is a nested set of rules that can validate itself.
type RuleSet interface {
	Valid() (bool, error)
}

// RuleSetHolder is implemented by controls exposing their own rule set.
type RuleSetHolder interface {
	Rules() RuleSet
}

// Submitter is implemented by submit controls.
type Submitter interface {
	IsSubmittedBy() bool
}

// UploadError mirrors the error codes reported for uploaded files.
type UploadError int

const (
	UploadErrOK        UploadError = 0
	UploadErrIniSize   UploadError = 1 // exceeds the server-side size limit
	UploadErrFormSize  UploadError = 2 // exceeds the form-declared size limit
	UploadErrPartial   UploadError = 3
	UploadErrNoFile    UploadError = 4
	UploadErrNoTmpDir  UploadError = 6
	UploadErrCantWrite UploadError = 7
	UploadErrExtension UploadError = 8
)

// FileLike is an uploaded file as seen by the file validators.
type FileLike interface {
	Size() int64
	ErrorCode() UploadError
	ContentType() string
	IsImage() bool
}

// Named is implemented by files that know their client-side name.
type Named interface {
	Name() string
}
