package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from text pulled out of environment data so it
// is drawn as plain characters. Entities are decoded after sanitising, so
// "a < b" and "Tom &amp; Jerry" come out readable.
func SanitizeText(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	cleaned := textSanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
