package i18n

import (
	"net/http"
)

// ExtractorConfig configures DefaultLangExtractor.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie holding the language preference.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter holding the language.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs. Requested languages
// are matched to the closest supported one.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order: the "lang" cookie, the "lang"
// query parameter, the non-standard Language header and Accept-Language.
// The first usable value wins.
//
// Without supported languages a value is usable when it parses as a BCP 47
// tag and is returned in canonical form ("EN-us" becomes "en-US"). With
// them it must match one of them and the matched code is returned.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	var matcher *langMatcher
	if len(config.SupportedLangs) > 0 {
		matcher = newLangMatcher(config.SupportedLangs)
	}

	validate := func(code string) string {
		tag, ok := parseCode(code)
		if !ok {
			return ""
		}
		if matcher == nil {
			return tag.String()
		}
		lang, _ := matcher.match(tag)
		return lang
	}

	return func(r *http.Request) string {
		if config.CookieName != "" {
			if cookie, err := r.Cookie(config.CookieName); err == nil {
				if lang := validate(cookie.Value); lang != "" {
					return lang
				}
			}
		}

		if config.QueryParamName != "" {
			if lang := validate(r.URL.Query().Get(config.QueryParamName)); lang != "" {
				return lang
			}
		}

		if lang := validate(r.Header.Get("Language")); lang != "" {
			return lang
		}

		tags := parseAcceptLanguageHeader(r.Header.Get("Accept-Language"))
		if len(tags) == 0 {
			return ""
		}
		if matcher == nil {
			return tags[0].String()
		}
		lang, _ := matcher.match(tags...)
		return lang
	}
}
