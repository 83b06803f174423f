package validator_test

import (
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type testForm struct{ tr validator.Translator }

func (f testForm) Translator() validator.Translator { return f.tr }

type testControl struct {
	name    string
	value   any
	form    validator.Form
	setHits int
}

func newControl(name string, value any) *testControl {
	return &testControl{name: name, value: value}
}

func (c *testControl) Value() any { return c.value }

func (c *testControl) SetValue(v any) {
	c.value = v
	c.setHits++
}

func (c *testControl) IsFilled() bool {
	switch v := c.value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}

func (c *testControl) Name() string         { return c.name }
func (c *testControl) Form() validator.Form { return c.form }

type testRuleSet struct {
	valid bool
	err   error
}

func (r testRuleSet) Valid() (bool, error) { return r.valid, r.err }

type containerControl struct {
	*testControl
	rules validator.RuleSet
}

func (c containerControl) Rules() validator.RuleSet { return c.rules }

type submitControl struct {
	*testControl
	submitted bool
}

func (c submitControl) IsSubmittedBy() bool { return c.submitted }

type testFile struct {
	name  string
	size  int64
	code  validator.UploadError
	ctype string
	image bool
}

func (f testFile) Name() string                     { return f.name }
func (f testFile) Size() int64                      { return f.size }
func (f testFile) ErrorCode() validator.UploadError { return f.code }
func (f testFile) ContentType() string              { return f.ctype }
func (f testFile) IsImage() bool                    { return f.image }

// eval runs a built-in validator through the default library.
func eval(id validator.ID, c validator.Control, arg validator.Argument) (bool, error) {
	return validator.Default().Evaluate(&validator.Rule{Validator: id, Arg: arg, Control: c})
}
