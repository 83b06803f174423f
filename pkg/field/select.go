package field

import (
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Select is a choice among fixed options. Its value is one option or, when
// multiple, a list of options.
type Select struct {
	*Field
	items    []any
	multiple bool
}

// NewSelect returns a choice control offering items.
func NewSelect(form *Form, name, caption string, multiple bool, items ...any) *Select {
	return &Select{Field: New(form, name, caption), items: items, multiple: multiple}
}

func (s *Select) Items() []any { return s.items }

// IsSelectionValid reports whether every selected value is one of the
// items. Values are compared by their string form.
func (s *Select) IsSelectionValid() bool {
	values, ok := s.value.([]any)
	if !ok {
		if strs, isStrs := s.value.([]string); isStrs {
			for _, v := range strs {
				values = append(values, v)
			}
		} else {
			values = []any{s.value}
		}
	}
	if !s.multiple && len(values) > 1 {
		return false
	}
	for _, v := range values {
		if !s.offers(v) {
			return false
		}
	}
	return true
}

func (s *Select) offers(v any) bool {
	want := validator.ToString(v)
	for _, item := range s.items {
		if validator.ToString(item) == want {
			return true
		}
	}
	return false
}

// Register adds the control specific validators (uploadValid, selectValid)
// to lib. Their messages come from the catalog like any built-in one.
func Register(lib *validator.Library) error {
	if err := lib.Register(validator.UploadValid, validateUpload); err != nil {
		return err
	}
	return lib.Register(validator.SelectValid, validateSelection)
}

func validateUpload(c validator.Control, _ validator.Argument) (validator.Result, error) {
	u, ok := c.(interface{ IsOK() bool })
	if !ok {
		return validator.Fail(), validator.ErrUnsupportedControl
	}
	return validator.Check(u.IsOK()), nil
}

func validateSelection(c validator.Control, _ validator.Argument) (validator.Result, error) {
	s, ok := c.(interface{ IsSelectionValid() bool })
	if !ok {
		return validator.Fail(), validator.ErrUnsupportedControl
	}
	return validator.Check(s.IsSelectionValid()), nil
}
