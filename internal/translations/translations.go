// Package translations embeds the bundled validation message translations.
package translations

import (
	"embed"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
)

//go:embed *.yaml
var files embed.FS

// Adapter loads the bundled translations.
func Adapter() *i18n.FSAdapter {
	return i18n.NewFSAdapter(i18n.NewYAMLParser(), files, ".")
}
