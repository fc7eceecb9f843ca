package utils

import (
	"strings"
	"unicode"

	"github.com/gojp/kana"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKeyword converts to lower case and NFKC form.
func NormalizeKeyword(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// RomajiVariant returns the romaji reading of an all-kana word, or "".
func RomajiVariant(s string) string {
	hasKana := false
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			hasKana = true
		case r == 'ー':
		default:
			return ""
		}
	}
	if !hasKana || !kana.IsKana(s) {
		return ""
	}
	r := strings.ToLower(kana.KanaToRomaji(s))
	if r == s {
		return ""
	}
	return r
}

func TrimFirstRune(s string) string {
	for i := range s {
		if i > 0 {
			return s[i:]
		}
	}
	return ""
}

// Truncate cuts s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 1 {
		return string(rs[:n])
	}
	return string(rs[:n-1]) + "…"
}
