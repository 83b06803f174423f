package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Integer string regex - optional minus sign, digits only
	integerRegex = regexp.MustCompile(`^-?[0-9]+$`)

	// Float string regex - evaluated after spaces are stripped and comma turned into dot
	floatRegex = regexp.MustCompile(`^-?[0-9]*[.]?[0-9]+$`)

	floatReplacer = strings.NewReplacer(" ", "", ",", ".")
)

// validateRange checks the value against a [min, max] pair. nil bounds are open.
func validateRange(c Control, arg Argument) (Result, error) {
	min, max, err := arg.Bounds(false)
	if err != nil {
		return Fail(), err
	}
	ok, err := inRange(c.Value(), min, max)
	return Check(ok), err
}

func validateMin(c Control, arg Argument) (Result, error) {
	bound, err := scalarArg(arg)
	if err != nil {
		return Fail(), err
	}
	ok, err := inRange(c.Value(), bound, nil)
	return Check(ok), err
}

func validateMax(c Control, arg Argument) (Result, error) {
	bound, err := scalarArg(arg)
	if err != nil {
		return Fail(), err
	}
	ok, err := inRange(c.Value(), nil, bound)
	return Check(ok), err
}

// validateInteger accepts integer strings and Go integers and normalizes
// them to int. Strings that overflow int stay strings and still pass.
func validateInteger(c Control, _ Argument) (Result, error) {
	switch v := c.Value().(type) {
	case string:
		if !integerRegex.MatchString(v) {
			return Fail(), nil
		}
		n, err := strconv.ParseInt(v, 10, strconv.IntSize)
		if err != nil {
			// out of int range: big integer passthrough
			return Pass(), nil
		}
		return Normalize(int(n)), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if n, ok := asInt(v); ok {
			return Normalize(n), nil
		}
		return Pass(), nil
	default:
		return Fail(), nil
	}
}

// validateFloat accepts numbers written with spaces as thousand separators
// and a comma or dot as decimal separator, normalizing them to float64.
func validateFloat(c Control, _ Argument) (Result, error) {
	switch v := c.Value().(type) {
	case string:
		s := floatReplacer.Replace(v)
		if !floatRegex.MatchString(s) {
			return Fail(), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Fail(), nil
		}
		return Normalize(f), nil
	case bool, nil:
		return Fail(), nil
	default:
		f, ok := asNumber(v)
		if !ok {
			return Fail(), nil
		}
		return Normalize(f), nil
	}
}

func scalarArg(arg Argument) (any, error) {
	v, ok := arg.Value()
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: expected a single value, got %s", ErrInvalidArgument, arg.Kind())
	}
	return v, nil
}
