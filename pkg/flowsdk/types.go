package flowsdk

// Flow states as they appear in the "state" field of responses.
const (
	StateUnauthenticated = "unauthenticated"
	StateOTPPending      = "otp_pending"
	StateAuthenticated   = "authenticated"
)

// Email warning codes carried in LoginResponse.Warnings.
const (
	WarningMissingEmail   = "missing_email"
	WarningDuplicateEmail = "duplicate_email"
	WarningMalformedEmail = "malformed_email"
)

// UserInfo is the public view of an account.
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /v1/login. State is "authenticated"
// (HTTP 200) when device trust skipped the code, or "otp_pending" (HTTP 202)
// when a code was emailed.
type LoginResponse struct {
	State string    `json:"state"`
	User  *UserInfo `json:"user,omitempty"`

	// Warnings carries non-fatal email findings for operators; clients may
	// ignore it.
	Warnings []string `json:"warnings,omitempty"`
}

// VerifyRequest is the body of POST /v1/login/verify.
type VerifyRequest struct {
	Code string `json:"code"`
}

// VerifyResponse is returned on a successful code verification.
type VerifyResponse struct {
	State string   `json:"state"`
	User  UserInfo `json:"user"`
}

// ResendResponse is returned from POST /v1/login/resend.
type ResendResponse struct {
	State string `json:"state"`
	Email string `json:"email"`
}

// SessionResponse is returned from GET /v1/session.
type SessionResponse struct {
	State string    `json:"state"`
	User  *UserInfo `json:"user,omitempty"`
}

// CreateUserRequest is the body of POST /v1/users. Operator-only.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// ErrorResponse is the generic failure body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is returned from the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Mailer   string `json:"mailer,omitempty"`
}
