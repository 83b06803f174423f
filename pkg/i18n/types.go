package i18n

import "net/http"

// LangExtractor returns the language requested by r, or "" when the
// request says nothing usable.
type LangExtractor func(r *http.Request) string
