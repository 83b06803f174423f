package message_test

import (
	"fmt"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type fakeTranslator struct {
	dict   map[string]string
	counts []int
	calls  int
}

func (t *fakeTranslator) Translate(msg string, count ...int) string {
	t.calls++
	t.counts = append(t.counts, count...)
	if out, ok := t.dict[msg]; ok {
		if len(count) > 0 {
			return fmt.Sprintf("%s [%d]", out, count[0])
		}
		return out
	}
	return msg
}

type fakeForm struct{ tr validator.Translator }

func (f fakeForm) Translator() validator.Translator { return f.tr }

type fakeControl struct {
	name  string
	value any
	form  validator.Form
}

func (c *fakeControl) Value() any           { return c.value }
func (c *fakeControl) SetValue(v any)       { c.value = v }
func (c *fakeControl) IsFilled() bool       { return c.value != nil && c.value != "" }
func (c *fakeControl) Name() string         { return c.name }
func (c *fakeControl) Form() validator.Form { return c.form }

// captionedControl has a label and translates it with its own prefix.
type captionedControl struct {
	*fakeControl
	caption string
	prefix  string
}

func (c captionedControl) Caption() string { return c.caption }

func (c captionedControl) Translate(text string, _ ...int) string {
	return c.prefix + text
}

func rule(c validator.Control, id validator.ID, arg validator.Argument, msg validator.Message) *validator.Rule {
	return &validator.Rule{Validator: id, Arg: arg, Message: msg, Control: c}
}
