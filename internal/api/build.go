package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/dmitrymomot/rulekit/pkg/field"
	"github.com/dmitrymomot/rulekit/pkg/filter"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/upload"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// builtForm is a request schema turned into controls and rule sets.
type builtForm struct {
	form     *rules.Form
	controls []validator.Control
	byName   map[string]validator.Control
}

type builder struct {
	lib    *validator.Library
	opts   []rules.Option
	form   *field.Form
	files  map[string][]*upload.File
	byName map[string]validator.Control
}

// buildForm creates the controls of req attached to a form translated by
// tr, then compiles their rules. Groups get a nested rule set over their
// children, used by the valid validator; the children are also validated
// on their own.
func buildForm(req *ValidateRequest, tr validator.Translator, lib *validator.Library, opts ...rules.Option) (*builtForm, error) {
	b := &builder{
		lib:    lib,
		opts:   opts,
		form:   field.NewForm(req.Form, tr),
		files:  req.files,
		byName: make(map[string]validator.Control),
	}
	if req.SubmittedBy != "" {
		b.form.SetSubmittedBy(req.SubmittedBy)
	}

	controls := make([]validator.Control, 0, len(req.Fields))
	for _, fs := range req.Fields {
		c, err := b.control(fs)
		if err != nil {
			return nil, err
		}
		controls = append(controls, c)
	}

	out := &builtForm{
		form:     rules.NewForm(opts...),
		controls: controls,
		byName:   b.byName,
	}
	if err := b.compile(out.form, req.Fields); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *builder) control(fs FieldSchema) (validator.Control, error) {
	if fs.Name == "" {
		return nil, fmt.Errorf("%w: control without name", ErrInvalidSchema)
	}
	if _, ok := b.byName[fs.Name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateControl, fs.Name)
	}

	value := normalizeValue(fs.Value)
	if len(fs.Filters) > 0 {
		fn, err := filter.Chain(fs.Filters...)
		if err != nil {
			return nil, fmt.Errorf("%w on %q", err, fs.Name)
		}
		value = filter.Apply(value, fn)
	}

	var c validator.Control
	switch fs.Type {
	case "", TypeText:
		c = field.New(b.form, fs.Name, fs.Label).WithValue(value)
	case TypeSelect, TypeMultiSelect:
		s := field.NewSelect(b.form, fs.Name, fs.Label, fs.Type == TypeMultiSelect, normalizeValue(fs.Items).([]any)...)
		s.SetValue(value)
		c = s
	case TypeUpload, TypeMultiUpload:
		u := field.NewUpload(b.form, fs.Name, fs.Label, fs.Type == TypeMultiUpload)
		u.SetFiles(b.files[fs.Name]...)
		c = u
	case TypeSubmit:
		c = field.NewSubmitButton(b.form, fs.Name, fs.Label)
	case TypeGroup:
		b.byName[fs.Name] = nil
		children := make([]validator.Control, 0, len(fs.Fields))
		for _, child := range fs.Fields {
			cc, err := b.control(child)
			if err != nil {
				return nil, err
			}
			children = append(children, cc)
		}
		c = field.NewGroup(b.form, fs.Name, fs.Label, children...)
	default:
		return nil, fmt.Errorf("%w: %q on %q", ErrUnknownType, fs.Type, fs.Name)
	}

	b.byName[fs.Name] = c
	return c, nil
}

func (b *builder) compile(form *rules.Form, fields []FieldSchema) error {
	for _, fs := range fields {
		c := b.byName[fs.Name]
		if group, ok := c.(*field.Group); ok {
			nested := rules.NewForm(b.opts...)
			if err := b.compile(nested, fs.Fields); err != nil {
				return err
			}
			group.SetRules(nested)
			if err := b.compile(form, fs.Fields); err != nil {
				return err
			}
		}

		set := form.Field(c)
		for _, rs := range fs.Rules {
			id := validator.ID(rs.Validator)
			if !b.lib.Has(id) {
				return fmt.Errorf("%w: %q on %q", ErrUnknownValidator, rs.Validator, fs.Name)
			}
			arg, err := b.argument(rs.Arg)
			if err != nil {
				return fmt.Errorf("%s on %q: %w", rs.Validator, fs.Name, err)
			}
			if rs.Message != "" {
				set.Add(id, arg, validator.Text(rs.Message))
			} else {
				set.Add(id, arg)
			}
		}
	}
	return nil
}

func (b *builder) argument(raw json.RawMessage) (validator.Argument, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return validator.NoArg(), nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return validator.NoArg(), fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	switch t := v.(type) {
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			resolved, err := b.item(item)
			if err != nil {
				return validator.NoArg(), err
			}
			items[i] = resolved
		}
		return validator.List(items...), nil
	case map[string]any:
		if _, ok := t["ref"]; ok {
			c, err := b.ref(t)
			if err != nil {
				return validator.NoArg(), err
			}
			return validator.Ref(c), nil
		}
		minV, hasMin := t["min"]
		maxV, hasMax := t["max"]
		if (!hasMin && !hasMax) || len(t) > 2 {
			return validator.NoArg(), fmt.Errorf("%w: object must be a range or a reference", ErrInvalidArgument)
		}
		lo, err := b.item(minV)
		if err != nil {
			return validator.NoArg(), err
		}
		hi, err := b.item(maxV)
		if err != nil {
			return validator.NoArg(), err
		}
		return validator.Range(lo, hi), nil
	default:
		return validator.Scalar(normalizeNumber(t)), nil
	}
}

// item resolves one list or range element: a reference becomes the control.
func (b *builder) item(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return normalizeNumber(v), nil
	}
	return b.ref(m)
}

func (b *builder) ref(m map[string]any) (validator.Control, error) {
	name, ok := m["ref"].(string)
	if !ok || len(m) != 1 {
		return nil, fmt.Errorf("%w: reference must be {\"ref\": \"name\"}", ErrInvalidArgument)
	}
	c, ok := b.byName[name]
	if !ok || c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReference, name)
	}
	return c, nil
}

// normalizeNumber turns integral JSON numbers into int so that counts drive
// %d substitution and plural selection.
func normalizeNumber(v any) any {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return v
	}
	return int(f)
}

// normalizeValue applies normalizeNumber to a value or to each list item.
func normalizeValue(v any) any {
	list, ok := v.([]any)
	if !ok {
		return normalizeNumber(v)
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = normalizeNumber(item)
	}
	return out
}

// values echoes the control values, with files described instead of
// returned.
func (f *builtForm) values() map[string]any {
	out := make(map[string]any, len(f.controls))
	for _, c := range f.controls {
		out[c.Name()] = controlValue(c)
	}
	return out
}

func controlValue(c validator.Control) any {
	switch t := c.(type) {
	case *field.Upload:
		files := make([]FileInfo, 0, len(t.Files()))
		for _, file := range t.Files() {
			files = append(files, fileInfo(file))
		}
		if t.Multiple() {
			return files
		}
		if len(files) == 0 {
			return nil
		}
		return files[0]
	case *field.Group:
		out := make(map[string]any, len(t.Controls()))
		for _, child := range t.Controls() {
			out[child.Name()] = controlValue(child)
		}
		return out
	case *field.SubmitButton:
		return t.IsSubmittedBy()
	default:
		return c.Value()
	}
}

func fileInfo(f *upload.File) FileInfo {
	info := FileInfo{Name: f.Name(), Size: f.Size(), OK: f.IsOK()}
	if f.IsOK() {
		info.ContentType = f.ContentType()
	}
	return info
}
