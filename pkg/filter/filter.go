package filter

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownFilter is returned for a name that is not registered.
var ErrUnknownFilter = errors.New("unknown filter")

// Func transforms a submitted value before validation. Lists are filtered
// item by item by Apply, so a Func only sees scalar values.
type Func func(v any) any

// String lifts a string transform to a Func. Non-string values pass
// through unchanged.
func String(fn func(string) string) Func {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	}
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
)

var builtins = map[string]Func{
	"trim":       String(strings.TrimSpace),
	"lower":      String(strings.ToLower),
	"upper":      String(strings.ToUpper),
	"title":      String(func(s string) string { return cases.Title(language.Und).String(s) }),
	"collapse":   String(collapseWhitespace),
	"singleLine": String(func(s string) string { return collapseWhitespace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)) }),
	"stripHtml":  String(func(s string) string { return html.UnescapeString(htmlTag.ReplaceAllString(s, "")) }),
	"printable":  String(removeControlChars),
	"digits":     String(keep(unicode.IsDigit)),
	"alnum":      String(keep(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) })),
	"int":        toInt,
	"float":      toFloat,
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func removeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

func keep(pred func(rune) bool) func(string) string {
	return func(s string) string {
		return strings.Map(func(r rune) rune {
			if pred(r) {
				return r
			}
			return -1
		}, s)
	}
}

// toInt converts numeric strings such as " 42 " to int. Values that do
// not parse are kept so the integer validator can reject them.
func toInt(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	n, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil {
		return v
	}
	return n
}

// toFloat accepts a decimal comma as well as a dot.
func toFloat(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return v
	}
	return f
}

// Lookup returns the built-in filter called name.
func Lookup(name string) (Func, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

// Names returns the built-in filter names.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	return out
}

// Chain resolves names into a single Func applied left to right.
func Chain(names ...string) (Func, error) {
	fns := make([]Func, 0, len(names))
	for _, name := range names {
		fn, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
		}
		fns = append(fns, fn)
	}
	return func(v any) any {
		for _, fn := range fns {
			v = fn(v)
		}
		return v
	}, nil
}

// Apply runs fn on v, or on each item when v is a list.
func Apply(v any, fn Func) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fn(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fn(item)
		}
		return out
	default:
		return fn(v)
	}
}
