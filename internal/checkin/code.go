// Package checkin issues and verifies the credentials attached to an event
// registration: the short manual check-in code and the QR payload.
package checkin

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CodeLength is the length of a manual check-in code.
const CodeLength = 12

// codeCharset omits 0/O/1/I so codes survive being read aloud at a door.
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCode returns a random check-in code. Codes are stored and compared
// uppercase; NormalizeCode is applied to user input before lookup.
func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate check-in code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(buf), nil
}

// NormalizeCode canonicalizes user input so code matching is
// case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewQRCredential returns the opaque value embedded in a registration's QR
// payload.
func NewQRCredential() string {
	return uuid.NewString()
}
