package field

import (
	"reflect"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Form owns a group of controls and their translator.
type Form struct {
	name        string
	translator  validator.Translator
	submittedBy string
}

// NewForm returns a form. tr may be nil.
func NewForm(name string, tr validator.Translator) *Form {
	return &Form{name: name, translator: tr}
}

func (f *Form) Name() string { return f.name }

func (f *Form) Translator() validator.Translator { return f.translator }

// SetTranslator replaces the translator, for example after locale
// negotiation.
func (f *Form) SetTranslator(tr validator.Translator) { f.translator = tr }

// SetSubmittedBy records the name of the button that submitted the form.
func (f *Form) SetSubmittedBy(button string) { f.submittedBy = button }

// Field is a plain input control: text, number, choice or a list of them.
type Field struct {
	name    string
	caption string
	value   any
	form    *Form
}

// New returns a field attached to form, which may be nil.
func New(form *Form, name, caption string) *Field {
	return &Field{name: name, caption: caption, form: form}
}

func (f *Field) Name() string    { return f.name }
func (f *Field) Caption() string { return f.caption }
func (f *Field) Value() any      { return f.value }

func (f *Field) SetValue(v any) { f.value = v }

// WithValue sets the value and returns the field.
func (f *Field) WithValue(v any) *Field {
	f.value = v
	return f
}

// Form returns the owning form or nil.
func (f *Field) Form() validator.Form {
	if f.form == nil {
		return nil
	}
	return f.form
}

// IsFilled reports whether the value is non-empty: a non-empty string,
// a non-empty list or any other non-nil value.
func (f *Field) IsFilled() bool {
	return isFilled(f.value)
}

// Translate translates text with the form's translator, if any.
func (f *Field) Translate(text string, count ...int) string {
	if f.form == nil || f.form.translator == nil {
		return text
	}
	return f.form.translator.Translate(text, count...)
}

func isFilled(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// SubmitButton is a button that can submit its form.
type SubmitButton struct {
	*Field
}

// NewSubmitButton returns a submit button of form.
func NewSubmitButton(form *Form, name, caption string) *SubmitButton {
	return &SubmitButton{Field: New(form, name, caption)}
}

// IsSubmittedBy reports whether this button submitted the form.
func (b *SubmitButton) IsSubmittedBy() bool {
	return b.form != nil && b.form.submittedBy == b.name
}

// IsFilled of a button is whether it was pressed.
func (b *SubmitButton) IsFilled() bool { return b.IsSubmittedBy() }

// Group is a container of controls validated through its own rule set.
type Group struct {
	*Field
	controls []validator.Control
	rules    validator.RuleSet
}

// NewGroup returns a group of controls.
func NewGroup(form *Form, name, caption string, controls ...validator.Control) *Group {
	return &Group{Field: New(form, name, caption), controls: controls}
}

// SetRules attaches the nested rule set used by the valid validator.
func (g *Group) SetRules(rs validator.RuleSet) *Group {
	g.rules = rs
	return g
}

func (g *Group) Rules() validator.RuleSet { return g.rules }

// Controls returns the grouped controls.
func (g *Group) Controls() []validator.Control { return g.controls }

// Value returns the child values keyed by child name.
func (g *Group) Value() any {
	out := make(map[string]any, len(g.controls))
	for _, c := range g.controls {
		out[c.Name()] = c.Value()
	}
	return out
}

// SetValue distributes a map of values to the children by name.
func (g *Group) SetValue(v any) {
	values, ok := v.(map[string]any)
	if !ok {
		return
	}
	for _, c := range g.controls {
		if cv, ok := values[c.Name()]; ok {
			c.SetValue(cv)
		}
	}
}

// IsFilled reports whether any child is filled.
func (g *Group) IsFilled() bool {
	for _, c := range g.controls {
		if c.IsFilled() {
			return true
		}
	}
	return false
}
