// Package langdetect provides best-effort language detection for canonical
// content. Detection never fails: anything it cannot classify comes back as
// the default language.
package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DefaultLanguage is returned whenever detection cannot produce a usable
// ISO 639-1 code.
const DefaultLanguage = "en"

// Detect returns the ISO 639-1 code of the text's language. The underlying
// trigram model is deterministic, so identical input always yields the same
// code. Empty or unclassifiable text yields DefaultLanguage.
func Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultLanguage
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return DefaultLanguage
	}
	return code
}
