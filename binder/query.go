package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Query binds URL query parameters to the fields of the struct v points to.
//
// Fields are matched by the `query:"name"` tag, or by the lower-cased field
// name without one; `query:"-"` skips a field. Supported field kinds are
// string, bool, integers, floats and slices of those. Slices accept
// repeated parameters and comma separated values.
//
//	type CatalogRequest struct {
//		Lang string   `query:"lang"`
//		IDs  []string `query:"id"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query())
	}
}

func bindValues(v any, tagName string, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidQuery)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		name, skip := paramName(sf, tagName)
		if skip {
			continue
		}
		raw := values[name]
		if len(raw) == 0 {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidQuery, name, err)
		}
	}
	return nil
}

func paramName(sf reflect.StructField, tagName string) (string, bool) {
	tag := sf.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func setField(fv reflect.Value, raw []string) error {
	if fv.Kind() != reflect.Slice {
		return setScalar(fv, raw[0])
	}

	var items []string
	for _, r := range raw {
		for item := range strings.SplitSeq(r, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	slice := reflect.MakeSlice(fv.Type(), len(items), len(items))
	for i, item := range items {
		if err := setScalar(slice.Index(i), item); err != nil {
			return err
		}
	}
	fv.Set(slice)
	return nil
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(s)
		if err != nil {
			return err
		}
		if fv.OverflowInt(n) {
			return fmt.Errorf("value %s overflows %s", s, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(s)
		if err != nil {
			return err
		}
		if fv.OverflowUint(n) {
			return fmt.Errorf("value %s overflows %s", s, fv.Type())
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}
