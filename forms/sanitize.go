package forms

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultMaxLength = 200

// Sanitize trims value and caps it to maxLength runes. Anything that is not a
// string sanitizes to "". A non-positive maxLength means DefaultMaxLength.
func Sanitize(value any, maxLength int) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxLength {
		// cutting may expose inner whitespace at the end
		s = strings.TrimRightFunc(string([]rune(s)[:maxLength]), unicode.IsSpace)
	}
	return s
}
