package translations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/internal/translations"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/message"
)

func TestBundledTranslations(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), translations.Adapter())
	require.NoError(t, err)
	assert.Equal(t, []string{"cs", "de", "en"}, tr.SupportedLanguages())

	en := tr.Locale("en")
	assert.Equal(t, "Please enter at least %d character.", en.Translate("Please enter at least %d characters.", 1))

	cs := tr.Locale("cs")
	assert.Equal(t, "Zadejte alespoň %d znaky.", cs.Translate("Please enter at least %d characters.", 2))

	// Every default template has a Czech and a German translation.
	for id, tmpl := range message.DefaultCatalog().Messages() {
		for _, lang := range []string{"cs", "de"} {
			assert.True(t, tr.HasTranslation(lang, tmpl), "%s: %s (%s)", lang, id, tmpl)
		}
	}
}
