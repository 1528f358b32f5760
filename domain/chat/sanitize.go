package chat

import (
	"regexp"
	"strings"
)

// Providers return markdown the mobile UI does not interpret; the
// markers are stripped rather than rendered. Order matters: bold before
// italic, or `**x**` would lose only one star per side.
var (
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	inlineCodeRe = regexp.MustCompile("`(.*?)`")
	blankRunRe   = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

// SanitizeProviderText strips inline markdown markers and collapses
// runs of 3+ newlines to exactly 2. Idempotent: applying it to already
// clean text is a no-op.
func SanitizeProviderText(text string) string {
	if text == "" {
		return text
	}

	cleaned := boldRe.ReplaceAllString(text, "$1")
	cleaned = italicRe.ReplaceAllString(cleaned, "$1")
	cleaned = inlineCodeRe.ReplaceAllString(cleaned, "$1")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")

	return strings.TrimSpace(cleaned)
}
