package validator

import "errors"

// Configuration errors. A false Result means the value failed validation;
// these errors mean the rule itself could not be evaluated.
var (
	// ErrUnknownValidator is returned when a rule names a validator that is not registered.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrInvalidArgument is returned when a rule argument has the wrong shape or type.
	ErrInvalidArgument = errors.New("invalid validator argument")

	// ErrInvalidPattern is returned when a pattern rule carries a malformed regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrUnsupportedControl is returned when a validator is applied to a control lacking the needed capability.
	ErrUnsupportedControl = errors.New("validator not supported by control")

	// ErrNilControl is returned when a rule has no control attached.
	ErrNilControl = errors.New("rule has no control")

	// ErrDuplicateValidator is returned when registering an id twice without replace.
	ErrDuplicateValidator = errors.New("validator already registered")
)
