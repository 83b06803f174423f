// Package i18n translates validation messages and other user facing text.
//
// Translations are keyed by the source message, so a catalog entry such as
// "Please enter at least %d characters." is looked up verbatim and its
// placeholders are formatted after translation. A value is either the
// translated string or a map of CLDR plural forms selected with
// golang.org/x/text/feature/plural:
//
//	cs:
//	  "This field is required.": "Toto pole je povinné."
//	  "Please enter at least %d characters.":
//	    one: "Zadejte alespoň %d znak."
//	    few: "Zadejte alespoň %d znaky."
//	    other: "Zadejte alespoň %d znaků."
//
// Translations come from a TranslationAdapter: MapAdapter, FileAdapter,
// NewDirectoryAdapter or FSAdapter over an embed.FS.
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewDirectoryAdapter(nil, "./translations"),
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
//	form := field.NewForm("signup", tr.Locale("cs"))
//
// Locale returns a validator.Translator bound to one language; the message
// formatter passes the numeric argument as the plural count.
//
// # HTTP
//
// Middleware negotiates the request language (cookie, query, Language and
// Accept-Language headers) and stores it in the context:
//
//	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(
//		i18n.WithSupportedLanguages(tr.SupportedLanguages()...),
//	)))
//
//	locale := tr.LocaleFromContext(req.Context())
//
// Negotiation uses golang.org/x/text/language matching, so "cs-CZ" is
// served by "cs".
package i18n
