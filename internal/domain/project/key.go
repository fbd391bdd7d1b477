package project

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MinKeyLength = 2
	MaxKeyLength = 10
)

var keyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// foldAccents strips combining marks so "Équipe" folds to "Equipe".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DeriveKey builds a key from the uppercase initials of name. Short results
// are padded from the first word and then with X, long ones truncated.
func DeriveKey(name string) string {
	words := strings.FieldsFunc(strings.ToUpper(foldAccents(name)), func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9')
	})

	var b strings.Builder
	for _, w := range words {
		b.WriteByte(w[0])
	}
	key := b.String()

	if len(key) < MinKeyLength && len(words) > 0 {
		rest := words[0][1:]
		for len(key) < MinKeyLength && rest != "" {
			key += rest[:1]
			rest = rest[1:]
		}
	}
	for len(key) < MinKeyLength {
		key += "X"
	}
	if key[0] >= '0' && key[0] <= '9' {
		key = "X" + key
	}
	if len(key) > MaxKeyLength {
		key = key[:MaxKeyLength]
	}
	return key
}

// KeyCandidate returns base for attempt 1 and base followed by the attempt
// number afterwards, trimming base to stay within MaxKeyLength.
func KeyCandidate(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	suffix := strconv.Itoa(attempt)
	if len(base)+len(suffix) > MaxKeyLength {
		base = base[:MaxKeyLength-len(suffix)]
	}
	return base + suffix
}

// NormalizeKey uppercases and checks an explicit key.
func NormalizeKey(key string) (string, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("project key must be %d-%d letters or digits starting with a letter", MinKeyLength, MaxKeyLength)
	}
	return key, nil
}
