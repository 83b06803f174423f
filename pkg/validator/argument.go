package validator

import (
	"fmt"
	"reflect"
)

// ArgKind tags the shape of a rule argument.
type ArgKind uint8

const (
	ArgNone ArgKind = iota
	ArgScalar
	ArgList
	ArgRange
	ArgControl
)

func (k ArgKind) String() string {
	switch k {
	case ArgNone:
		return "none"
	case ArgScalar:
		return "scalar"
	case ArgList:
		return "list"
	case ArgRange:
		return "range"
	case ArgControl:
		return "control"
	default:
		return fmt.Sprintf("ArgKind(%d)", uint8(k))
	}
}

// Argument is the optional argument of a rule: nothing, a scalar, an ordered
// list whose items may reference other controls, a [min, max] pair with
// either end open, or a reference to another control.
type Argument struct {
	kind  ArgKind
	items []any
}

// NoArg returns the absent argument. It is the zero value too.
func NoArg() Argument { return Argument{} }

// Scalar wraps a single value.
func Scalar(v any) Argument {
	return Argument{kind: ArgScalar, items: []any{v}}
}

// List wraps an ordered list. Items may be Controls; they are dereferenced
// by Resolve.
func List(items ...any) Argument {
	return Argument{kind: ArgList, items: append([]any(nil), items...)}
}

// Range builds a [min, max] pair. A nil bound is open.
func Range(min, max any) Argument {
	return Argument{kind: ArgRange, items: []any{min, max}}
}

// Ref references another control whose current value is the argument.
func Ref(c Control) Argument {
	return Argument{kind: ArgControl, items: []any{c}}
}

// Kind reports the argument shape.
func (a Argument) Kind() ArgKind { return a.kind }

// IsZero reports whether the argument is absent.
func (a Argument) IsZero() bool { return a.kind == ArgNone }

// Items returns the argument as a list. A non-list argument becomes a
// singleton, the absent argument becomes [nil]. Control references are kept
// as is.
func (a Argument) Items() []any {
	if a.kind == ArgNone {
		return []any{nil}
	}
	return append([]any(nil), a.items...)
}

// Value returns the single value of a scalar or control argument.
func (a Argument) Value() (any, bool) {
	if a.kind != ArgScalar && a.kind != ArgControl {
		return nil, false
	}
	return a.items[0], true
}

// Int returns the argument when it is a scalar of an integer kind. Formatting
// uses it as the plural count.
func (a Argument) Int() (int, bool) {
	if a.kind != ArgScalar {
		return 0, false
	}
	return asInt(a.items[0])
}

// Bounds returns the [min, max] pair of a range or two-item list argument.
// A scalar is read as the exact pair [n, n] when exact is true.
func (a Argument) Bounds(exact bool) (min, max any, err error) {
	switch a.kind {
	case ArgRange, ArgList:
		if len(a.items) != 2 {
			return nil, nil, fmt.Errorf("%w: range needs 2 items, got %d", ErrInvalidArgument, len(a.items))
		}
		return a.items[0], a.items[1], nil
	case ArgScalar, ArgControl:
		if exact {
			return a.items[0], a.items[0], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: expected range, got %s", ErrInvalidArgument, a.kind)
}

// Resolve returns a copy of arg where every control reference is replaced by
// that control's current value. A Ref argument becomes a scalar.
func Resolve(arg Argument) Argument {
	if arg.kind == ArgNone {
		return arg
	}
	out := Argument{kind: arg.kind, items: make([]any, len(arg.items))}
	for i, item := range arg.items {
		if c, ok := item.(Control); ok && c != nil {
			out.items[i] = c.Value()
			continue
		}
		out.items[i] = item
	}
	if out.kind == ArgControl {
		out.kind = ArgScalar
	}
	return out
}

// FileList normalizes a file-valued control value to a list. A single file
// becomes a one-element list; slices are filtered down to their files.
func FileList(value any) []FileLike {
	if value == nil {
		return nil
	}
	if f, ok := value.(FileLike); ok {
		return []FileLike{f}
	}
	if files, ok := value.([]FileLike); ok {
		return files
	}
	items, ok := asList(value)
	if !ok {
		return nil
	}
	files := make([]FileLike, 0, len(items))
	for _, item := range items {
		if f, ok := item.(FileLike); ok {
			files = append(files, f)
		}
	}
	return files
}

// asList reports whether v is list-like and returns its items.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, iter.Value().Interface())
		}
		return out, true
	default:
		return nil, false
	}
}

// toList wraps a scalar into a singleton list.
func toList(v any) []any {
	if items, ok := asList(v); ok {
		return items
	}
	return []any{v}
}
