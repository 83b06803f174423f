package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// numericStringRegex matches decimal numbers with optional sign, fraction and
// exponent, surrounded by optional whitespace.
var numericStringRegex = regexp.MustCompile(`^\s*[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?\s*$`)

// ToString converts a control value or argument item to its string form.
// nil and false become "", true becomes "1", lists are joined with ", ".
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return ""
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case []byte:
		return string(t)
	case Named:
		return t.Name()
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}

	if items, ok := asList(v); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = ToString(item)
		}
		return strings.Join(parts, ", ")
	}
	return cast.ToString(v)
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// asInt returns v when it holds a Go integer that fits into int.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8, int16, int32, int64, uint8, uint16, uint32:
		n, err := cast.ToInt64E(t)
		if err != nil || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint, uint64:
		n, err := cast.ToUint64E(t)
		if err != nil || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// asNumber coerces numbers and numeric strings to float64. Booleans, nil and
// non-numeric strings are rejected.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		if !numericStringRegex.MatchString(t) {
			return 0, false
		}
		v = strings.TrimSpace(t)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// inRange reports whether value lies within [min, max]. nil bounds are open.
// Non-numeric values never match.
func inRange(value, min, max any) (bool, error) {
	n, ok := asNumber(value)
	if !ok {
		return false, nil
	}
	if min != nil {
		lo, ok := asNumber(min)
		if !ok {
			return false, fmt.Errorf("%w: non-numeric lower bound %v", ErrInvalidArgument, min)
		}
		if n < lo {
			return false, nil
		}
	}
	if max != nil {
		hi, ok := asNumber(max)
		if !ok {
			return false, fmt.Errorf("%w: non-numeric upper bound %v", ErrInvalidArgument, max)
		}
		if n > hi {
			return false, nil
		}
	}
	return true, nil
}
