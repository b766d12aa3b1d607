// internal/chatbot/textutil/textutil.go

// Package textutil holds the string helpers shared by the language detector
// and the matcher.
package textutil

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases and trims s, then strips diacritics through NFD
// decomposition. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	lower := strings.TrimSpace(strings.ToLower(s))
	if IsASCII(lower) {
		return lower
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return out
}

// NormalizeAll normalizes every entry of list.
func NormalizeAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = Normalize(s)
	}
	return out
}

// ContainsAny reports whether any needle is a substring of haystack.
func ContainsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// ContainsAnyWord reports whether any word occurs in haystack with no
// letter immediately before or after it.
func ContainsAnyWord(haystack string, words ...string) bool {
	for _, w := range words {
		if w != "" && containsWord(haystack, w) {
			return true
		}
	}
	return false
}

func containsWord(haystack, word string) bool {
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		if !letterBefore(haystack, start) && !letterAfter(haystack, end) {
			return true
		}
		offset = start + 1
		if offset >= len(haystack) {
			return false
		}
	}
}

func letterBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r := lastRune(s[:i])
	return unicode.IsLetter(r)
}

func letterAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	for _, r := range s[i:] {
		return unicode.IsLetter(r)
	}
	return false
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// ExtractYear returns the first standalone 19xx/20xx token of s, or 0.
func ExtractYear(s string) int {
	for i := 0; i+4 <= len(s); i++ {
		if !isDigit(s[i]) || (i > 0 && isDigit(s[i-1])) {
			continue
		}
		if i+4 < len(s) && isDigit(s[i+4]) {
			continue
		}
		token := s[i : i+4]
		if !isDigit(token[1]) || !isDigit(token[2]) || !isDigit(token[3]) {
			continue
		}
		if !strings.HasPrefix(token, "19") && !strings.HasPrefix(token, "20") {
			continue
		}
		year, err := strconv.Atoi(token)
		if err == nil && year >= 1900 && year <= 2100 {
			return year
		}
	}
	return 0
}

// RuneLen counts runes, not bytes.
func RuneLen(s string) int {
	return len([]rune(s))
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// IsASCII reports whether s holds only ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
