package validator

import "unicode/utf8"

// validateLength checks the item count of list values or the character
// length of anything else. A scalar argument means an exact length.
func validateLength(c Control, arg Argument) (Result, error) {
	min, max, err := arg.Bounds(true)
	if err != nil {
		return Fail(), err
	}
	ok, err := inRange(valueLength(c.Value()), min, max)
	return Check(ok), err
}

func validateMinLength(c Control, arg Argument) (Result, error) {
	n, err := scalarArg(arg)
	if err != nil {
		return Fail(), err
	}
	return validateLength(c, Range(n, nil))
}

func validateMaxLength(c Control, arg Argument) (Result, error) {
	n, err := scalarArg(arg)
	if err != nil {
		return Fail(), err
	}
	return validateLength(c, Range(nil, n))
}

func valueLength(v any) int {
	if items, ok := asList(v); ok {
		return len(items)
	}
	return utf8.RuneCountInString(ToString(v))
}
