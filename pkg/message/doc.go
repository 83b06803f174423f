// Package message renders the human-readable message of a failed rule.
//
// A Catalog maps validator ids to templates. The Formatter picks the rule's
// template (an explicit message wins over the catalog), passes it through the
// translator and substitutes the placeholders:
//
//	%name      control name
//	%label     control caption, translated by the control when it can
//	%value     current control value, only when values may be echoed
//	%d, %s     next argument item
//	%N$d, %N$s argument item N (1-based); the implicit position is kept
//
// Pre-rendered markup messages skip translation and substitution.
//
// Usage:
//
//	f := message.NewFormatter(message.WithTranslator(tr), message.WithLogger(log))
//	text := f.String(rule, true)
//
// Catalog overrides can be loaded from YAML or JSON files with LoadCatalog.
package message
