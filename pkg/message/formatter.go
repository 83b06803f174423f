package message

import (
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// placeholderRegex matches %name, %label, %value, %d, %s and the indexed
// forms %N$d and %N$s.
var placeholderRegex = regexp.MustCompile(`%(name|label|value|\d+\$[ds]|[ds])`)

// Formatter renders the message of a failed rule.
type Formatter struct {
	catalog    *Catalog
	translator validator.Translator
	logger     *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCatalog sets the catalog used for rules without an explicit message.
func WithCatalog(c *Catalog) Option {
	return func(f *Formatter) {
		if c != nil {
			f.catalog = c
		}
	}
}

// WithTranslator sets the translator. Without it the formatter asks the
// control's form for one.
func WithTranslator(t validator.Translator) Option {
	return func(f *Formatter) {
		f.translator = t
	}
}

// WithLogger sets the logger used for missing message warnings.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFormatter returns a formatter backed by the default catalog unless
// configured otherwise.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		catalog: DefaultCatalog(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Catalog returns the catalog in use.
func (f *Formatter) Catalog() *Catalog { return f.catalog }

// Format renders the message for rule. Markup messages are returned as is.
// Otherwise the template is picked (explicit message, then catalog),
// translated and its placeholders substituted. With withValue unset %value
// and control references are not expanded, so user input is never echoed.
func (f *Formatter) Format(rule *validator.Rule, withValue bool) validator.Message {
	if rule.Message.IsMarkup() {
		return rule.Message
	}

	tmpl := rule.Message.String()
	if rule.Message.IsZero() && rule.Func == nil {
		tmpl, _ = f.catalog.Lookup(rule.Validator)
	}
	// An explicit empty message is as good as none.
	if tmpl == "" {
		f.logger.Warn("missing validation message",
			slog.String("control", controlName(rule.Control)),
			slog.String("validator", string(rule.Validator)),
		)
	}

	if tr := f.translatorFor(rule.Control); tr != nil {
		if n, ok := rule.Arg.Int(); ok {
			tmpl = tr.Translate(tmpl, n)
		} else {
			tmpl = tr.Translate(tmpl)
		}
	}

	return validator.Text(f.substitute(tmpl, rule, withValue))
}

// String is Format returning plain text.
func (f *Formatter) String(rule *validator.Rule, withValue bool) string {
	return f.Format(rule, withValue).String()
}

func (f *Formatter) translatorFor(c validator.Control) validator.Translator {
	if f.translator != nil {
		return f.translator
	}
	if c == nil {
		return nil
	}
	if form := c.Form(); form != nil {
		return form.Translator()
	}
	return nil
}

// substitute replaces the placeholders in tmpl. The cursor for unindexed
// placeholders lives in this call only.
func (f *Formatter) substitute(tmpl string, rule *validator.Rule, withValue bool) string {
	if !strings.Contains(tmpl, "%") {
		return tmpl
	}

	args := rule.Arg.Items()
	cursor := -1

	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(token string) string {
		switch verb := token[1:]; verb {
		case "name":
			return controlName(rule.Control)
		case "label":
			return label(rule.Control)
		case "value":
			if !withValue || rule.Control == nil {
				return token
			}
			return validator.ToString(rule.Control.Value())
		case "d", "s":
			cursor++
			return argument(args, cursor, withValue)
		default:
			n, err := strconv.Atoi(verb[:len(verb)-2])
			if err != nil || n < 1 {
				return token
			}
			return argument(args, n-1, withValue)
		}
	})
}

// argument renders args[i]. Control references render as their value, or as
// %i when values must not be echoed.
func argument(args []any, i int, withValue bool) string {
	if i < 0 || i >= len(args) || args[i] == nil {
		return ""
	}
	if c, ok := args[i].(validator.Control); ok {
		if withValue {
			return validator.ToString(c.Value())
		}
		return "%" + strconv.Itoa(i)
	}
	return validator.ToString(args[i])
}

func label(c validator.Control) string {
	cc, ok := c.(validator.Captioned)
	if !ok {
		return ""
	}
	caption := cc.Caption()
	if tc, ok := c.(validator.Translatable); ok {
		return tc.Translate(caption)
	}
	return caption
}

func controlName(c validator.Control) string {
	if c == nil {
		return ""
	}
	return c.Name()
}
