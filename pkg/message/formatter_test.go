package message_test

import (
	"bytes"
	"html/template"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/message"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func TestFormatter_Placeholders(t *testing.T) {
	t.Parallel()

	f := message.NewFormatter()
	c := &fakeControl{name: "age", value: 42}

	cases := []struct {
		name string
		tmpl string
		arg  validator.Argument
		want string
	}{
		{"sequential", "%d and %d", validator.List(1, 10), "1 and 10"},
		{"indexed", "%2$d before %1$d", validator.List(1, 10), "10 before 1"},
		{"indexed does not move cursor", "%2$d, %d, %d", validator.List(1, 10), "10, 1, 10"},
		{"string specifier", "%s!", validator.Scalar("hi"), "hi!"},
		{"scalar wrapped into list", "max %d", validator.Scalar(5), "max 5"},
		{"out of range is empty", "%d-%d-%d", validator.List(1, 2), "1-2-"},
		{"indexed out of range", "[%3$s]", validator.List(1, 2), "[]"},
		{"absent argument", "<%d>", validator.NoArg(), "<>"},
		{"open range bound", "from %d to %d", validator.Range(nil, 10), "from  to 10"},
		{"zero index renders literally", "%0$d", validator.Scalar(1), "%0$d"},
		{"name", "%name is wrong", validator.NoArg(), "age is wrong"},
		{"value", "got %value", validator.NoArg(), "got 42"},
		{"no placeholders", "plain", validator.Scalar(1), "plain"},
		{"unknown token stays", "100%x", validator.NoArg(), "100%x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.String(rule(c, "custom", tc.arg, validator.Text(tc.tmpl)), true)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatter_CursorIsPerCall(t *testing.T) {
	t.Parallel()

	f := message.NewFormatter()
	c := &fakeControl{name: "n"}

	first := f.String(rule(c, validator.RangeRule, validator.Range(1, 10), validator.Message{}), true)
	second := f.String(rule(c, validator.RangeRule, validator.Range(3, 7), validator.Message{}), true)

	assert.Equal(t, "Please enter a value between 1 and 10.", first)
	assert.Equal(t, "Please enter a value between 3 and 7.", second)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := f.String(rule(c, "x", validator.List(i, i+1), validator.Text("%d|%d")), true)
			assert.Equal(t, validator.ToString(i)+"|"+validator.ToString(i+1), got)
		}()
	}
	wg.Wait()
}

func TestFormatter_Value(t *testing.T) {
	t.Parallel()

	f := message.NewFormatter()
	c := &fakeControl{name: "email", value: "<script>"}

	assert.Equal(t, "bad: <script>", f.String(rule(c, "x", validator.NoArg(), validator.Text("bad: %value")), true))
	assert.Equal(t, "bad: %value", f.String(rule(c, "x", validator.NoArg(), validator.Text("bad: %value")), false))
}

func TestFormatter_ControlArguments(t *testing.T) {
	t.Parallel()

	f := message.NewFormatter()
	password := &fakeControl{name: "password", value: "s3cret"}
	confirm := &fakeControl{name: "confirm", value: "other"}

	r := rule(confirm, validator.Equal, validator.Ref(password), validator.Message{})
	assert.Equal(t, "Please enter s3cret.", f.String(r, true))
	assert.Equal(t, "Please enter %0.", f.String(r, false))

	r = rule(confirm, "x", validator.List("a", password), validator.Text("%s or %s"))
	assert.Equal(t, "a or %1", f.String(r, false))
}

func TestFormatter_Label(t *testing.T) {
	t.Parallel()

	f := message.NewFormatter()

	c := captionedControl{fakeControl: &fakeControl{name: "mail"}, caption: "E-mail", prefix: "T:"}
	assert.Equal(t, "T:E-mail is required", f.String(rule(c, "x", validator.NoArg(), validator.Text("%label is required")), true))

	plain := &fakeControl{name: "mail"}
	assert.Equal(t, " is required", f.String(rule(plain, "x", validator.NoArg(), validator.Text("%label is required")), true))
}

func TestFormatter_Markup(t *testing.T) {
	t.Parallel()

	tr := &fakeTranslator{}
	f := message.NewFormatter(message.WithTranslator(tr))
	c := &fakeControl{name: "x"}

	msg := f.Format(rule(c, validator.Filled, validator.Scalar(3), validator.Markup(template.HTML("<b>%d %name</b>"))), true)
	assert.True(t, msg.IsMarkup())
	assert.Equal(t, template.HTML("<b>%d %name</b>"), msg.HTML())
	assert.Zero(t, tr.calls)
}

func TestFormatter_Translation(t *testing.T) {
	t.Parallel()

	t.Run("integer argument is the plural count", func(t *testing.T) {
		tr := &fakeTranslator{dict: map[string]string{"Please enter at least %d characters.": "Zadejte alespoň %d znaků."}}
		f := message.NewFormatter(message.WithTranslator(tr))
		c := &fakeControl{name: "pw"}

		got := f.String(rule(c, validator.MinLength, validator.Scalar(8), validator.Message{}), true)
		assert.Equal(t, "Zadejte alespoň 8 znaků. [8]", got)
		assert.Equal(t, []int{8}, tr.counts)
	})

	t.Run("non-integer argument passes no count", func(t *testing.T) {
		tr := &fakeTranslator{}
		f := message.NewFormatter(message.WithTranslator(tr))
		c := &fakeControl{name: "n"}

		f.String(rule(c, validator.RangeRule, validator.Range(1, 2), validator.Message{}), true)
		assert.Equal(t, 1, tr.calls)
		assert.Empty(t, tr.counts)
	})

	t.Run("falls back to the form translator", func(t *testing.T) {
		tr := &fakeTranslator{dict: map[string]string{"This field is required.": "Povinné pole."}}
		c := &fakeControl{name: "n", form: fakeForm{tr: tr}}

		got := message.NewFormatter().String(rule(c, validator.Filled, validator.NoArg(), validator.Message{}), true)
		assert.Equal(t, "Povinné pole.", got)
	})

	t.Run("form without translator", func(t *testing.T) {
		c := &fakeControl{name: "n", form: fakeForm{}}
		got := message.NewFormatter().String(rule(c, validator.Filled, validator.NoArg(), validator.Message{}), true)
		assert.Equal(t, "This field is required.", got)
	})
}

func TestFormatter_MissingMessage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	f := message.NewFormatter(message.WithLogger(log))
	c := &fakeControl{name: "nickname"}

	got := f.String(rule(c, "unknownRule", validator.NoArg(), validator.Message{}), true)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "missing validation message")
	assert.Contains(t, buf.String(), "control=nickname")

	buf.Reset()
	r := rule(c, validator.Filled, validator.NoArg(), validator.Message{})
	r.Func = func(validator.Control, validator.Argument) (validator.Result, error) { return validator.Fail(), nil }
	assert.Empty(t, f.String(r, true), "custom funcs have no catalog message")
	assert.Contains(t, buf.String(), "missing validation message")

	buf.Reset()
	got = f.String(rule(c, validator.Filled, validator.NoArg(), validator.Text("")), true)
	assert.Empty(t, got, "an explicit empty message does not fall back to the catalog")
	assert.Contains(t, buf.String(), "missing validation message")
	assert.Contains(t, buf.String(), "validator=filled")

	buf.Reset()
	assert.Equal(t, "This field is required.", f.String(rule(c, validator.Filled, validator.NoArg(), validator.Message{}), true))
	assert.Empty(t, buf.String())
}

func TestFormatter_CustomCatalog(t *testing.T) {
	t.Parallel()

	cat := message.DefaultCatalog().With(map[validator.ID]string{validator.Filled: "%name must be set"})
	f := message.NewFormatter(message.WithCatalog(cat))
	require.Same(t, cat, f.Catalog())

	got := f.String(rule(&fakeControl{name: "city"}, validator.Filled, validator.NoArg(), validator.Message{}), true)
	assert.Equal(t, "city must be set", got)
}
