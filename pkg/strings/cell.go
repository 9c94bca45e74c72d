package strings

import (
	"strings"
)

// DefaultCellMaxLen is the default maximum width of a value cell in form tables.
const DefaultCellMaxLen = 48

// MinCellLen is the smallest width TruncateCell will honor.
// Anything smaller would leave no room for content plus "...".
const MinCellLen = 4

// TruncateCell shortens s to at most maxLen runes for single-line table output.
// Whitespace runs (including newlines) are collapsed to a single space and
// "..." is appended when the value was cut. maxLen is clamped to MinCellLen.
func TruncateCell(s string, maxLen int) string {
	if maxLen < MinCellLen {
		maxLen = MinCellLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// OrDash returns "-" for empty values so table columns never render blank.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
