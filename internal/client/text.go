package client

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// PlainSummary strips markup from an upstream HTML summary and truncates it to max runes,
// appending "..." when cut. max <= 0 disables truncation.
func PlainSummary(summary string, max int) string {
	text := html.UnescapeString(stripPolicy.Sanitize(summary))
	text = strings.Join(strings.Fields(text), " ")

	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "..."
}
