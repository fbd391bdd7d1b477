// Package id generates short random identifiers for embedded records such as
// attachments.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12
)

const (
	PrefixAttachment = "att"
)

// Generate returns a cryptographically random base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix returns "prefix_xxxxxxxxxxxx".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// NewAttachmentID returns a fresh attachment identifier.
func NewAttachmentID() (string, error) {
	return GenerateWithPrefix(PrefixAttachment, DefaultLength)
}

// HasPrefix reports whether v looks like "prefix_<id>".
func HasPrefix(v, prefix string) bool {
	rest, ok := strings.CutPrefix(v, prefix+"_")
	return ok && rest != ""
}
