package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// ErrLanguageNotSupported reports a language without translations.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}

// Plural form names accepted in translation files.
const (
	FormZero  = "zero"
	FormOne   = "one"
	FormTwo   = "two"
	FormFew   = "few"
	FormMany  = "many"
	FormOther = "other"
)

var pluralForms = map[plural.Form]string{
	plural.Zero:  FormZero,
	plural.One:   FormOne,
	plural.Two:   FormTwo,
	plural.Few:   FormFew,
	plural.Many:  FormMany,
	plural.Other: FormOther,
}

// Translator holds translations of messages into several languages. Keys
// are the source messages themselves; a value is the translated string or
// a map of plural forms.
//
// The zero value is not usable, create one with NewTranslator.
type Translator struct {
	mu             sync.RWMutex
	adapter        TranslationAdapter
	translations   map[string]map[string]any
	matcher        *langMatcher
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:       adapter,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the translations with a fresh load from the adapter.
// On error the current translations stay in place.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}

	langs := slices.Sorted(maps.Keys(translations))
	matcher := newLangMatcher(langs)

	t.mu.Lock()
	t.translations = translations
	t.matcher = matcher
	t.mu.Unlock()

	if len(langs) == 0 {
		t.logger.WarnContext(ctx, "no translations provided")
	} else {
		t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", langs))
	}
	return nil
}

func validateTranslations(trans map[string]map[string]any) error {
	for lang, messages := range trans {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if messages == nil {
			return fmt.Errorf("%w: %s", ErrNilLanguageMap, lang)
		}
	}
	return nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.translations))
}

// DefaultLanguage returns the language used when a message is missing in
// the requested one.
func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Match resolves a language code to a supported one: exact code first,
// then the closest supported variant ("cs-CZ" picks "cs").
func (t *Translator) Match(lang string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.match(lang)
}

func (t *Translator) match(lang string) (string, bool) {
	if _, ok := t.translations[lang]; ok {
		return lang, true
	}
	return t.matcher.matchCode(lang)
}

// HasTranslation reports whether key is translated into lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := lookup(t.translations[lang], key)
	return ok
}

// lookup finds key verbatim and, failing that, as a dot-separated path
// through nested maps. Source messages usually end with a dot, so the
// verbatim lookup must come first.
func lookup(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if val, ok := m[key]; ok {
		return val, true
	}
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return nil, false
	}
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		if current, ok = asStringMap(val); !ok {
			return nil, false
		}
	}
	return nil, false
}

// pluralForm picks the CLDR cardinal form of n in lang. An explicit zero
// form wins for n == 0 even in languages whose rules have none.
func pluralForm(lang string, n int, forms map[string]any) (string, bool) {
	if n == 0 {
		if s, ok := forms[FormZero].(string); ok {
			return s, true
		}
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	form := pluralForms[plural.Cardinal.MatchPlural(language.Make(lang), abs, 0, 0, 0, 0)]
	if s, ok := forms[form].(string); ok {
		return s, true
	}
	s, ok := forms[FormOther].(string)
	return s, ok
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// namedSprintf replaces %{name} with params; unknown names stay as is.
func namedSprintf(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// resolve finds the text for key in lang, falling back to the default
// language. count selects a plural form when the value has several.
func (t *Translator) resolve(lang, key string, count *int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := []string{lang}
	if matched, ok := t.match(lang); ok && matched != lang {
		langs = []string{matched}
	}
	if t.defaultLang != langs[0] {
		langs = append(langs, t.defaultLang)
	}

	for _, l := range langs {
		val, ok := lookup(t.translations[l], key)
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			return v, true
		case map[string]any:
			n := 1
			if count == nil {
				if s, isStr := v[FormOther].(string); isStr {
					return s, true
				}
			} else {
				n = *count
			}
			if s, found := pluralForm(l, n, v); found {
				return s, true
			}
		case fmt.Stringer:
			return v.String(), true
		}
		if t.missingLogMode {
			t.logger.Warn("translation is not a string",
				slog.String("lang", l), slog.String("key", key), slog.String("type", fmt.Sprintf("%T", val)))
		}
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", logger.Locale(lang), slog.String("key", key))
	}
	return "", false
}

func (t *Translator) fallback(key string) string {
	if t.fallbackToKey {
		return key
	}
	return ""
}

// T translates key into lang and substitutes named %{key} placeholders
// from args given as key, value pairs.
//
//	// "Hello, %{name}!" translated as "Ahoj, %{name}!"
//	msg := tr.T("cs", "Hello, %{name}!", "name", "Jan")
func (t *Translator) T(lang, key string, args ...string) string {
	text, ok := t.resolve(lang, key, nil)
	if !ok {
		text = t.fallback(key)
	}
	return namedSprintf(text, args)
}

// N translates key selecting the plural form for n. %{count} is
// substituted with n unless args override it.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	text, ok := t.resolve(lang, key, &n)
	if !ok {
		text = t.fallback(key)
	}
	return namedSprintf(text, append([]string{"count", strconv.Itoa(n)}, args...))
}

// Td translates key and returns defaultValue when it is missing.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	text, ok := t.resolve(lang, key, nil)
	if !ok {
		text = defaultValue
	}
	return namedSprintf(text, args)
}

// Tc translates key into the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc is N with the language stored in ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// ExportJSON returns the translations of lang as a JSON document, for
// client side rendering.
func (t *Translator) ExportJSON(lang string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages, ok := t.translations[lang]
	if !ok {
		return nil, &ErrLanguageNotSupported{Lang: lang}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return data, nil
}

// Locale binds the translator to one language. The result translates
// validation messages.
func (t *Translator) Locale(lang string) *Locale {
	if matched, ok := t.Match(lang); ok {
		lang = matched
	} else {
		lang = t.defaultLang
	}
	return &Locale{translator: t, lang: lang}
}

// LocaleFromContext is Locale with the language stored in ctx.
func (t *Translator) LocaleFromContext(ctx context.Context) *Locale {
	return t.Locale(GetLocale(ctx))
}

// Locale is a Translator bound to a language. It satisfies
// validator.Translator.
type Locale struct {
	translator *Translator
	lang       string
}

// Lang returns the bound language code.
func (l *Locale) Lang() string { return l.lang }

// Translate returns the translation of message. The first count, when
// given, selects the plural form and fills %{count}. A missing message is
// returned unchanged so its own placeholders still get formatted.
func (l *Locale) Translate(message string, count ...int) string {
	var n *int
	if len(count) > 0 {
		n = &count[0]
	}
	text, ok := l.translator.resolve(l.lang, message, n)
	if !ok {
		return message
	}
	if n != nil {
		return namedSprintf(text, []string{"count", strconv.Itoa(*n)})
	}
	return text
}

// T is Translator.T in the bound language.
func (l *Locale) T(key string, args ...string) string {
	return l.translator.T(l.lang, key, args...)
}

// N is Translator.N in the bound language.
func (l *Locale) N(key string, n int, args ...string) string {
	return l.translator.N(l.lang, key, n, args...)
}
