package utils

import (
	"strconv"
	"unicode/utf8"
)

// Reverse returns s with its runes in reverse order. Invalid bytes are kept
// as they are.
func Reverse(s string) string {
	if len(s) < 2 {
		return s
	}
	buf := make([]byte, len(s))
	end := len(buf)
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		end -= size
		copy(buf[end:], s[i:i+size])
		i += size
	}
	return string(buf)
}

// CommonPrefixLen returns the byte length of the longest common prefix of a and b,
// never cutting a multi-byte rune in half.
func CommonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	for i > 0 && i < len(a) && !utf8.RuneStart(a[i]) {
		i--
	}
	return i
}

// FirstRune returns the first rune of s and its byte width.
func FirstRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	digits := []byte(strconv.Itoa(n))
	if len(digits) <= 3 {
		return string(digits)
	}
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}
