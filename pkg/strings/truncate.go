package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the column width tool descriptions are
// truncated to in table output.
const DefaultDescriptionMaxLen = 60

// MinTruncateLen is the smallest usable maxLen: one character plus "...".
const MinTruncateLen = 4

// TruncateDescription collapses a string onto a single line and truncates
// it to maxLen runes, appending "..." when content was cut. maxLen values
// below MinTruncateLen are clamped.
func TruncateDescription(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
