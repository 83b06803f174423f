package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Default templates keyed by validator id.
var defaults = map[validator.ID]string{
	validator.CSRF:        "Your session has expired. Please return to the home page and try again.",
	validator.Equal:       "Please enter %s.",
	validator.NotEqual:    "This value should not be %s.",
	validator.Filled:      "This field is required.",
	validator.Blank:       "This field should be blank.",
	validator.MinLength:   "Please enter at least %d characters.",
	validator.MaxLength:   "Please enter no more than %d characters.",
	validator.Length:      "Please enter a value between %d and %d characters long.",
	validator.Email:       "Please enter a valid email address.",
	validator.URL:         "Please enter a valid URL.",
	validator.Integer:     "Please enter a valid integer.",
	validator.Float:       "Please enter a valid number.",
	validator.Min:         "Please enter a value greater than or equal to %d.",
	validator.Max:         "Please enter a value less than or equal to %d.",
	validator.RangeRule:   "Please enter a value between %d and %d.",
	validator.FileSize:    "The size of the uploaded file can be up to %d bytes.",
	validator.MaxPostSize: "The uploaded data exceeds the limit of %d bytes.",
	validator.MimeType:    "The uploaded file is not in the expected format.",
	validator.Image:       "The uploaded file must be image in format JPEG, GIF, PNG or WebP.",
	validator.SelectValid: "Please select a valid option.",
	validator.UploadValid: "An error occurred during file upload.",
}

// Catalog maps validator ids to message templates. A Catalog is never
// modified after construction, so one instance can serve concurrent
// formatters.
type Catalog struct {
	messages map[validator.ID]string
}

// DefaultCatalog returns the built-in English templates.
func DefaultCatalog() *Catalog {
	return &Catalog{messages: maps.Clone(defaults)}
}

// NewCatalog returns a catalog holding exactly the given templates.
func NewCatalog(messages map[validator.ID]string) *Catalog {
	c := &Catalog{messages: make(map[validator.ID]string, len(messages))}
	maps.Copy(c.messages, messages)
	return c
}

// Lookup returns the template registered for id.
func (c *Catalog) Lookup(id validator.ID) (string, bool) {
	if c == nil {
		return "", false
	}
	msg, ok := c.messages[id]
	return msg, ok
}

// With returns a copy of the catalog with the overrides applied.
func (c *Catalog) With(overrides map[validator.ID]string) *Catalog {
	out := NewCatalog(c.messages)
	maps.Copy(out.messages, overrides)
	return out
}

// Messages returns a copy of all templates.
func (c *Catalog) Messages() map[validator.ID]string {
	return maps.Clone(c.messages)
}

// IDs returns the ids that have a template, sorted.
func (c *Catalog) IDs() []validator.ID {
	return slices.Sorted(maps.Keys(c.messages))
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.messages) }

// LoadCatalog reads a YAML or JSON file mapping validator ids to templates
// and applies it on top of the default catalog.
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	return LoadCatalogFS(ctx, os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadCatalogFS is LoadCatalog reading from fsys, for embedded catalogs.
func LoadCatalogFS(ctx context.Context, fsys fs.FS, name string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	overrides, err := ParseCatalog(data, filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return DefaultCatalog().With(overrides), nil
}

// ParseCatalog decodes a flat id to template map. ext selects the format
// and may carry a leading dot.
func ParseCatalog(data []byte, ext string) (map[validator.ID]string, error) {
	var raw map[string]string
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParseFile, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParseFile, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	out := make(map[validator.ID]string, len(raw))
	for k, v := range raw {
		out[validator.ID(k)] = v
	}
	return out, nil
}
