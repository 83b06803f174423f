// Package validator provides the catalog of named validators used by form
// rules, together with the capability interfaces a control has to offer and
// the argument model the validators consume.
//
// A validator is a Func that inspects a Control and an optional Argument and
// returns a Result. Validators are pure decisions; the few that also parse the
// value (URL, Integer, Float) report the parsed value in Result and let the
// caller decide whether to commit it. Library.Evaluate commits it on success.
//
// # Architecture
//
// Each source file groups a family of validators (`comparable_rules.go`,
// `numeric_rules.go`, `string_rules.go`, `format_rules.go`,
// `pattern_rules.go`, `file_rules.go`). They are registered in a Library, an
// injectable registry keyed by ID. Default returns a library with every
// built-in validator; Register adds application specific ones.
//
// Core building blocks:
//   - Control, Form, Translator, FileLike – capabilities consumed from the
//     surrounding form model
//   - Argument – tagged variant: none, scalar, list, range or control reference
//   - Rule – validator id or Func, argument, message and control
//   - Result – outcome with optional normalized value
//
// # Usage
//
//	lib := validator.Default()
//	ok, err := lib.Evaluate(&validator.Rule{
//	    Validator: validator.RangeRule,
//	    Arg:       validator.Range(1, 10),
//	    Control:   ageField,
//	})
//	if err != nil {
//	    // the rule is misconfigured
//	}
//
// # Error Handling
//
// A failed validation is a false result. Errors are reserved for rules that
// cannot be evaluated: ErrUnknownValidator, ErrInvalidArgument,
// ErrInvalidPattern and ErrUnsupportedControl. Use errors.Is to tell them
// apart.
package validator
