package textutil

import "unicode/utf8"

// Truncate shortens a string to at most max runes for log output,
// appending "..." when anything was cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
