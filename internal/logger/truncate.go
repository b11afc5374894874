package logger

import "unicode/utf8"

// Truncate shortens s to at most n bytes for logging, cutting on a rune
// boundary, and marks the cut with "...".
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
