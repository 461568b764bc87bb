package form

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// IsEffectivelyEmpty reports whether HTML authored in a rich-text editor has
// no visible text. Markup-only content like "<p></p>" counts as empty; the
// check strips tags, decodes entities and trims whitespace (including the
// non-breaking spaces the editor inserts).
func IsEffectivelyEmpty(htmlContent string) bool {
	text := stripPolicy.Sanitize(htmlContent)
	text = html.UnescapeString(text)
	text = strings.TrimFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\r' || r == '\t' || r == '\u00a0'
	})
	return text == ""
}
