// Package otpx generates the short numeric codes delivered to users by
// email during login.
package otpx

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated code.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random, zero-padded 6-digit code drawn
// from crypto/rand. Codes are compared as exact strings, so the leading
// zeros matter.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otpx: failed to draw random code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ValidFormat reports whether s looks like a generated code: exactly six
// ASCII digits. Used to reject junk before hitting the store.
func ValidFormat(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
