package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls an attribute out of a record's context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator adds request scoped attributes from the context to
// every record. Attributes logged explicitly win: an extracted
// attribute is dropped when the record or a WithAttrs call already carries
// its key, so a line never repeats "locale" or "request_id".
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
	// keys added through WithAttrs at the current group level
	static map[string]struct{}
}

// NewLogHandlerDecorator wraps next. nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}

	seen := make(map[string]struct{}, len(h.static)+rec.NumAttrs())
	for k := range h.static {
		seen[k] = struct{}{}
	}
	rec.Attrs(func(a slog.Attr) bool {
		seen[a.Key] = struct{}{}
		return true
	})

	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok {
			continue
		}
		if _, dup := seen[attr.Key]; dup {
			continue
		}
		seen[attr.Key] = struct{}{}
		rec.AddAttrs(attr)
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &LogHandlerDecorator{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
		static:     h.static,
	}
	if len(attrs) > 0 {
		out.static = make(map[string]struct{}, len(h.static)+len(attrs))
		for k := range h.static {
			out.static[k] = struct{}{}
		}
		for _, a := range attrs {
			out.static[a.Key] = struct{}{}
		}
	}
	return out
}

// WithGroup nests later attributes, extracted ones included, under name.
// Keys added before the group no longer collide with them.
func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &LogHandlerDecorator{next: h.next.WithGroup(name), extractors: h.extractors}
}
