package textutil

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entityReplacer decodes the entities the news search API actually emits.
var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
	"&#39;", "'",
)

// Normalize strips markup tags from s, decodes known HTML entities and trims
// surrounding whitespace. Plain text passes through unchanged.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	return strings.TrimSpace(s)
}

// Truncate limits s to maxLen runes, appending an ellipsis when cut.
// Rune-based so Korean article text is never split mid-character.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
