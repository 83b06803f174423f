package validator

import (
	"fmt"
	"slices"
	"strings"
)

// validateFileSize fails if any file is larger than the limit or was cut off
// by the server-side size limit.
func validateFileSize(c Control, arg Argument) (Result, error) {
	v, err := scalarArg(arg)
	if err != nil {
		return Fail(), err
	}
	limit, ok := asNumber(v)
	if !ok {
		return Fail(), fmt.Errorf("%w: non-numeric file size limit %v", ErrInvalidArgument, v)
	}
	for _, f := range FileList(c.Value()) {
		if float64(f.Size()) > limit || f.ErrorCode() == UploadErrIniSize {
			return Fail(), nil
		}
	}
	return Pass(), nil
}

// validateMimeType accepts files whose content type is listed either exactly
// or through a "type/*" wildcard. The argument is a list or a comma
// separated string.
func validateMimeType(c Control, arg Argument) (Result, error) {
	allowed, err := mimeTypes(arg)
	if err != nil {
		return Fail(), err
	}
	for _, f := range FileList(c.Value()) {
		typ := strings.ToLower(f.ContentType())
		wildcard := typ
		if i := strings.IndexByte(typ, '/'); i >= 0 {
			wildcard = typ[:i] + "/*"
		}
		if !slices.Contains(allowed, typ) && !slices.Contains(allowed, wildcard) {
			return Fail(), nil
		}
	}
	return Pass(), nil
}

func validateImage(c Control, _ Argument) (Result, error) {
	for _, f := range FileList(c.Value()) {
		if !f.IsImage() {
			return Fail(), nil
		}
	}
	return Pass(), nil
}

func mimeTypes(arg Argument) ([]string, error) {
	switch arg.Kind() {
	case ArgList:
		items := arg.Items()
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, strings.TrimSpace(ToString(item)))
		}
		return out, nil
	case ArgScalar:
		v, _ := arg.Value()
		if items, ok := asList(v); ok {
			return mimeTypes(List(items...))
		}
		var out []string
		for part := range strings.SplitSeq(ToString(v), ",") {
			out = append(out, strings.TrimSpace(part))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected mime type list, got %s", ErrInvalidArgument, arg.Kind())
	}
}
