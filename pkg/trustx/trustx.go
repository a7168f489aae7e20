// Package trustx encodes and validates the device-trust token that lets a
// returning user skip the email code for a window after a successful
// verification.
//
// The token is an HS256-signed JWT carrying the user's email and the
// ISO-8601 timestamp of the last successful verification. The browser holds
// it in a long-lived cookie; the server keeps no record of issued tokens, so
// validity is decided entirely from the token contents. Anything that fails
// to parse or verify is treated as "no token present" - a bad cookie must
// degrade to asking for a code, never crash a login.
package trustx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed reports a token that failed to parse or verify. Callers
	// treat this the same as an absent token.
	ErrMalformed = errors.New("trustx: malformed trust token")

	// ErrEmptySecret reports a codec constructed without signing material.
	ErrEmptySecret = errors.New("trustx: signing secret must not be empty")
)

// Token is the decoded payload of a device-trust cookie.
type Token struct {
	Email      string
	VerifiedAt time.Time
}

type claims struct {
	Email      string `json:"email"`
	VerifiedAt string `json:"verified_at"` // ISO-8601 / RFC 3339
	jwt.RegisteredClaims
}

// Codec signs and verifies trust tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
}

// NewCodec builds a Codec from the given secret.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Codec{secret: secret}, nil
}

// Encode mints a signed token recording that email completed verification
// at the given instant.
func (c *Codec) Encode(t Token) (string, error) {
	now := t.VerifiedAt.UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:      t.Email,
		VerifiedAt: now.Format(time.RFC3339),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	})
	return tok.SignedString(c.secret)
}

// Decode parses and verifies an encoded token. Any failure - bad base64,
// wrong algorithm, bad signature, unparseable timestamp - comes back as
// ErrMalformed so callers can uniformly fall back to requiring a code.
func (c *Codec) Decode(raw string) (Token, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Token{}, ErrMalformed
	}

	verifiedAt, err := time.Parse(time.RFC3339, cl.VerifiedAt)
	if err != nil {
		return Token{}, ErrMalformed
	}

	return Token{Email: cl.Email, VerifiedAt: verifiedAt}, nil
}

// Valid reports whether a decoded token authorises skipping the email code:
// the email must match the identity that just passed the password check and
// the last verification must be no older than maxAge.
func (t Token) Valid(email string, now time.Time, maxAge time.Duration) bool {
	if t.Email == "" || t.Email != email {
		return false
	}
	return now.Sub(t.VerifiedAt) <= maxAge
}
