package process

import (
	"html"
	"regexp"
	"strings"
)

var tagReg *regexp.Regexp = regexp.MustCompile(`<[^>]+>`)
var emptyParaReg *regexp.Regexp = regexp.MustCompile(`(?m)<p>\s*</p>\n?`)

// formatBody reduces storage-format markup to plain text. Applied uniformly
// across all content types so bodies compare consistently.
func formatBody(val string) string {
	val = emptyParaReg.ReplaceAllString(val, "")
	val = tagReg.ReplaceAllString(val, "")
	return strings.TrimSpace(html.UnescapeString(val))
}
