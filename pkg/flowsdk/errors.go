package flowsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tuskera/authflow/pkg/httpx"
)

// Error codes returned in the "error" field of failure responses.
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeSessionExpired      = "session_expired"
	ErrorCodeCodeExpired         = "code_expired"
	ErrorCodeInvalidCode         = "invalid_code"
	ErrorCodeIdentityNotFound    = "identity_not_found"
	ErrorCodeNotificationFailure = "notification_failure"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeServerError         = "server_error"
)

// FlowError is the wire form of a failed flow operation. It is shared by the
// server (to write responses) and the SDK client (to surface them).
type FlowError struct {
	// StatusCode is the HTTP status for this error; not serialized.
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error to an HTTP response writer.
func (e *FlowError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest reports a malformed body or missing field.
	ErrInvalidRequest = &FlowError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials reports a failed username/password check. It is
	// deliberately silent about which of the two was wrong.
	ErrInvalidCredentials = &FlowError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	// ErrSessionExpired reports a missing, expired or out-of-step session;
	// the client restarts from login.
	ErrSessionExpired = &FlowError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeSessionExpired,
		Description: "session expired, log in again",
	}

	// ErrCodeExpired reports a verification code past its window.
	ErrCodeExpired = &FlowError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeCodeExpired,
		Description: "the verification code has expired, log in again",
	}

	// ErrInvalidCode reports a code mismatch. The challenge stays live; the
	// client may retry.
	ErrInvalidCode = &FlowError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCode,
		Description: "incorrect verification code",
	}

	// ErrIdentityNotFound reports that the account mid-flow no longer
	// exists.
	ErrIdentityNotFound = &FlowError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeIdentityNotFound,
		Description: "account no longer exists, log in again",
	}

	// ErrNotificationFailure reports that the verification mail could not be
	// sent.
	ErrNotificationFailure = &FlowError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeNotificationFailure,
		Description: "failed to send the verification code",
	}

	// ErrUnauthorized reports a missing or wrong admin credential.
	ErrUnauthorized = &FlowError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "unauthorized",
	}

	// ErrServerError reports an unexpected internal failure.
	ErrServerError = &FlowError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrMethodNotAllowed reports an unsupported HTTP method.
	ErrMethodNotAllowed = &FlowError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}
)

// NewFlowError builds a custom FlowError.
func NewFlowError(statusCode int, code, description string) *FlowError {
	return &FlowError{StatusCode: statusCode, Code: code, Description: description}
}

// parseErrorResponse turns a non-2xx response body into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &FlowError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &FlowError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
