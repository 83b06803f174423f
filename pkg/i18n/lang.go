package i18n

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better is known about the client.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header before parsing; legitimate
// headers are far shorter.
const maxAcceptLanguageLength = 4096

// maxLangCodeLength is the RFC 5646 recommended maximum.
const maxLangCodeLength = 35

// langMatcher maps client preferences onto a fixed set of language codes.
type langMatcher struct {
	codes   []string
	matcher language.Matcher
}

func newLangMatcher(codes []string) *langMatcher {
	m := &langMatcher{}
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		m.codes = append(m.codes, code)
		tags = append(tags, tag)
	}
	if len(tags) > 0 {
		m.matcher = language.NewMatcher(tags)
	}
	return m
}

// match returns the supported code closest to prefs, which are ordered by
// preference.
func (m *langMatcher) match(prefs ...language.Tag) (string, bool) {
	if m.matcher == nil || len(prefs) == 0 {
		return "", false
	}
	_, idx, conf := m.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(m.codes) {
		return "", false
	}
	return m.codes[idx], true
}

// matchCode matches a single language code such as "cs-CZ".
func (m *langMatcher) matchCode(code string) (string, bool) {
	tag, ok := parseCode(code)
	if !ok {
		return "", false
	}
	return m.match(tag)
}

func parseCode(code string) (language.Tag, bool) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > maxLangCodeLength {
		return language.Und, false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// parseAcceptLanguageHeader returns the header's tags ordered by quality.
func parseAcceptLanguageHeader(header string) []language.Tag {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
		if i := strings.LastIndexByte(header, ','); i > 0 {
			header = header[:i]
		}
	}
	if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
		return tags
	}

	// One malformed entry fails the whole header; keep the valid ones.
	type weighted struct {
		tag language.Tag
		q   float32
	}
	var entries []weighted
	for entry := range strings.SplitSeq(header, ",") {
		tags, q, err := language.ParseAcceptLanguage(strings.TrimSpace(entry))
		if err != nil || len(tags) == 0 {
			continue
		}
		entries = append(entries, weighted{tags[0], q[0]})
	}
	slices.SortStableFunc(entries, func(a, b weighted) int {
		return cmp.Compare(b.q, a.q)
	})
	tags := make([]language.Tag, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return tags
}

// ParseAcceptLanguage negotiates an Accept-Language header against the
// supported codes and returns the best one, or defaultLang without a
// match. Regional variants match their base language ("en-US" picks
// "en").
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}
	if code, ok := newLangMatcher(supportedLangs).match(parseAcceptLanguageHeader(header)...); ok {
		return code
	}
	return defaultLang
}
