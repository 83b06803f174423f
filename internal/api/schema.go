package api

import (
	"encoding/json"

	"github.com/dmitrymomot/rulekit/pkg/upload"
)

// Control types accepted in FieldSchema.Type. An empty type means text.
const (
	TypeText        = "text"
	TypeSelect      = "select"
	TypeMultiSelect = "multiselect"
	TypeUpload      = "upload"
	TypeMultiUpload = "multiupload"
	TypeSubmit      = "submit"
	TypeGroup       = "group"
)

// ValidateRequest describes a submitted form: its controls with their
// values and rules.
type ValidateRequest struct {
	Form string `json:"form"`
	// Language overrides the negotiated request language.
	Language    string        `json:"language,omitempty"`
	SubmittedBy string        `json:"submitted_by,omitempty"`
	Fields      []FieldSchema `json:"fields"`

	// files are the uploads of a multipart request keyed by control name.
	files map[string][]*upload.File
}

// FieldSchema is one control of the form.
type FieldSchema struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value,omitempty"`

	// Filters normalize Value before validation, e.g. ["trim", "lower"].
	Filters []string `json:"filters,omitempty"`
	// Items are the options of a select.
	Items []any `json:"items,omitempty"`
	// Fields are the children of a group.
	Fields []FieldSchema `json:"fields,omitempty"`

	Rules []RuleSchema `json:"rules,omitempty"`
}

// RuleSchema attaches a validator to a control.
//
// Arg is absent, a scalar, a list, a {"min": a, "max": b} range (either end
// may be omitted) or {"ref": "control"} naming another control whose value
// is used. List items may be references too.
type RuleSchema struct {
	Validator string          `json:"validator"`
	Arg       json.RawMessage `json:"arg,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// ValidateResult is the body of a successful validation.
type ValidateResult struct {
	Valid    bool           `json:"valid"`
	Language string         `json:"language"`
	Values   map[string]any `json:"values"`
}

// FileInfo describes an uploaded file in the echoed values.
type FileInfo struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	OK          bool   `json:"ok"`
}

// CatalogRequest selects the language and, optionally, the validators of a
// catalog listing.
type CatalogRequest struct {
	Lang string   `query:"lang"`
	IDs  []string `query:"id"`
}

// CatalogResult lists message templates by validator id.
type CatalogResult struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}
