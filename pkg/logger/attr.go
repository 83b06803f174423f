package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors". With no errors it
// returns an empty Attr, which slog drops.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Control records the name of a form control.
func Control(name string) slog.Attr {
	return slog.String("control", name)
}

// Validator records a validator id.
func Validator(id string) slog.Attr {
	return slog.String("validator", id)
}

// Locale records the language a response was rendered in.
func Locale(lang string) slog.Attr {
	return slog.String("locale", lang)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}
