package validator

// ID identifies a validator in the library and in the message catalog.
type ID string

// Built-in validators.
const (
	Equal     ID = "equal"
	NotEqual  ID = "notEqual"
	Filled    ID = "filled"
	Blank     ID = "blank"
	Valid     ID = "valid"
	RangeRule ID = "range"
	Min       ID = "min"
	Max       ID = "max"
	Length    ID = "length"
	MinLength ID = "minLength"
	MaxLength ID = "maxLength"
	Submitted ID = "submitted"
	Email     ID = "email"
	URL       ID = "url"
	Pattern   ID = "pattern"
	Integer   ID = "integer"
	Float     ID = "float"
	FileSize  ID = "fileSize"
	MimeType  ID = "mimeType"
	Image     ID = "image"
)

// Identifiers that only carry catalog messages; no predicate is registered
// for them.
const (
	MaxPostSize ID = "maxPostSize"
	CSRF        ID = "csrf"
	UploadValid ID = "uploadValid"
	SelectValid ID = "selectValid"
)

// Result is the outcome of a validator. When Normalized is set, Value holds
// the parsed form of the control value; the evaluator decides whether to
// write it back.
type Result struct {
	OK         bool
	Value      any
	Normalized bool
}

// Pass returns a successful result without normalization.
func Pass() Result { return Result{OK: true} }

// Fail returns a failed result.
func Fail() Result { return Result{} }

// Check converts a plain predicate outcome into a Result.
func Check(ok bool) Result { return Result{OK: ok} }

// Normalize returns a successful result carrying a normalized value.
func Normalize(v any) Result { return Result{OK: true, Value: v, Normalized: true} }

// Func is a validator. It must not keep state between calls. The returned
// error signals a configuration problem, never a failed validation.
type Func func(c Control, arg Argument) (Result, error)

// Predicate adapts a plain boolean check into a Func.
func Predicate(fn func(c Control, arg Argument) bool) Func {
	return func(c Control, arg Argument) (Result, error) {
		return Check(fn(c, arg)), nil
	}
}
