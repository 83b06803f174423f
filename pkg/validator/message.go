package validator

import "html/template"

type messageKind uint8

const (
	messageAbsent messageKind = iota
	messageText
	messageMarkup
)

// Message is the message attached to a rule. The zero value means "no
// message"; the formatter then falls back to the catalog.
type Message struct {
	kind   messageKind
	text   string
	markup template.HTML
}

// Text returns a message template subject to translation and placeholder
// substitution.
func Text(tmpl string) Message {
	return Message{kind: messageText, text: tmpl}
}

// Markup returns a pre-rendered message. It bypasses translation and
// substitution entirely.
func Markup(html template.HTML) Message {
	return Message{kind: messageMarkup, markup: html}
}

// IsZero reports whether no message was set.
func (m Message) IsZero() bool { return m.kind == messageAbsent }

// IsMarkup reports whether m is pre-rendered markup.
func (m Message) IsMarkup() bool { return m.kind == messageMarkup }

// HTML returns the markup of a pre-rendered message.
func (m Message) HTML() template.HTML { return m.markup }

// String returns the message text. Markup is returned verbatim.
func (m Message) String() string {
	if m.kind == messageMarkup {
		return string(m.markup)
	}
	return m.text
}
