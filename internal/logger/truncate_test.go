package logger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "...", Truncate("abc", 0))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// Each Hangul syllable is three bytes.
	s := strings.Repeat("가", 10)

	for n := 1; n < len(s); n++ {
		out := Truncate(s, n)
		assert.True(t, utf8.ValidString(out), "n=%d gave %q", n, out)
		assert.LessOrEqual(t, len(out), n+len("..."))
	}
	assert.Equal(t, "가가...", Truncate(s, 8))
}
