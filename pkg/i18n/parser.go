package i18n

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Parser decodes a translation document. The result is keyed by language
// code; each language maps a source message to either a translated string
// or a map of plural forms (zero, one, two, few, many, other).
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)

	// SupportsFileExtension accepts the extension with or without the dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser by file extension. Returns nil for
// unknown extensions.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// normalize checks the decoded document shape and converts nested maps
// into map[string]any.
func normalize(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, raw := range data {
		messages, ok := asStringMap(raw)
		if !ok {
			return nil, errors.Join(ErrInvalidStructure,
				fmt.Errorf("language %q: expected map, got %T", lang, raw))
		}
		for key, val := range messages {
			if nested, isMap := asStringMap(val); isMap {
				messages[key] = nested
			}
		}
		result[lang] = messages
	}
	return result, nil
}

func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
