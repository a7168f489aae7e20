package domain

import "time"

// FlowState is where a session sits in the login state machine.
type FlowState string

const (
	StateUnauthenticated FlowState = "unauthenticated"
	StateOTPPending      FlowState = "otp_pending"
	StateAuthenticated   FlowState = "authenticated"
)

// Session is one browser session's server-side state. The client holds an
// opaque token; only its SHA-256 fingerprint is stored.
//
// At most one challenge is pending per session: issuing a new code
// overwrites PendingUserID/OTPCode/OTPIssuedAt in place.
type Session struct {
	ID        string // ULID
	TokenHash string // fingerprint of the opaque cookie token

	// UserID is set once the session is fully authenticated.
	UserID string

	// Challenge fields, populated while a code is outstanding.
	PendingUserID string
	OTPCode       string
	// OTPIssuedAt is kept as the recorded string. Legacy rows may carry a
	// timestamp without a zone; ChallengeIssuedAt normalizes at the read
	// boundary rather than trusting the stored form.
	OTPIssuedAt string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// State derives the flow state from the session fields.
func (s Session) State() FlowState {
	switch {
	case s.UserID != "":
		return StateAuthenticated
	case s.PendingUserID != "":
		return StateOTPPending
	default:
		return StateUnauthenticated
	}
}

// ChallengeIssuedAt parses OTPIssuedAt into an absolute instant. Timestamps
// recorded without a zone are taken as UTC so that naive and aware values
// are never compared directly.
func (s Session) ChallengeIssuedAt() (time.Time, bool) {
	if s.OTPIssuedAt == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s.OTPIssuedAt); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s.OTPIssuedAt, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}
