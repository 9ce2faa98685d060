package forms

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		max  int
		want string
	}{
		{"trims", "  Alpha \t\n", 10, "Alpha"},
		{"truncates", "abcdefgh", 3, "abc"},
		{"counts runes", "inscrição", 8, "inscriçã"},
		{"no trailing space after cut", "abc  def", 4, "abc"},
		{"non string", 42, 10, ""},
		{"nil", nil, 10, ""},
		{"default max", strings.Repeat("x", 300), 0, strings.Repeat("x", DefaultMaxLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Sanitize(tt.in, tt.max))
		})
	}
}

func TestSanitizeIsIdempotentAndBounded(t *testing.T) {
	inputs := []string{
		"", " ", "a", "  lead  ", "a b c d e f", "x  y", "\xff\xfeabc  ",
		strings.Repeat("ab ", 120), strings.Repeat("é ", 300),
	}
	for _, in := range inputs {
		for _, max := range []int{1, 2, 5, 150, 500} {
			once := Sanitize(in, max)
			require.LessOrEqual(t, utf8.RuneCountInString(once), max, "%q/%d", in, max)
			require.Equal(t, strings.TrimSpace(once), once, "%q/%d", in, max)
			require.Equal(t, once, Sanitize(once, max), "%q/%d", in, max)
		}
	}
}
