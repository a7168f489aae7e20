package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tuskera/authflow/internal/authflow/domain"
	"github.com/tuskera/authflow/internal/authflow/service"
	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/httpx"
	"github.com/tuskera/authflow/pkg/slogx"
)

// FlowHandler serves the login flow endpoints.
type FlowHandler struct {
	FlowService *service.FlowService
	Cookies     CookieConfig
}

// HandleLogin handles POST /v1/login
//
//	@Summary		Log in with username and password
//	@Description	Runs the password step of the login flow. On success the session cookie is set and the
//	@Description	response reports the resulting state: "authenticated" (200) when the device-trust cookie
//	@Description	skipped the email code, or "otp_pending" (202) when a verification code was emailed.
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		flowsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	flowsdk.LoginResponse	"Authenticated via device trust"
//	@Success		202		{object}	flowsdk.LoginResponse	"Verification code emailed"
//	@Failure		400		{object}	flowsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	flowsdk.ErrorResponse	"Invalid credentials"
//	@Failure		502		{object}	flowsdk.ErrorResponse	"Verification mail could not be sent"
//	@Router			/v1/login [post].
func (h *FlowHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req flowsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse login request", "err", err)
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	trustToken := cookieValue(r, TrustCookieName)

	res, err := h.FlowService.Login(ctx, req.Username, req.Password, trustToken)
	if err != nil {
		writeFlowError(w, ctx, err)
		return
	}

	h.Cookies.setSessionCookie(w, res.SessionToken)

	body := flowsdk.LoginResponse{
		State:    string(res.State),
		Warnings: emailWarnings(res.EmailIssues),
	}

	status := http.StatusAccepted
	if res.State == domain.StateAuthenticated {
		status = http.StatusOK
		info := toUserInfo(res.User)
		body.User = &info
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, status, body)
}

// toUserInfo converts a domain user to its public wire form.
func toUserInfo(u domain.User) flowsdk.UserInfo {
	return flowsdk.UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

func emailWarnings(issues []domain.EmailIssue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = string(issue)
	}
	return out
}

// writeFlowError maps service sentinels onto wire errors. Anything
// unrecognized is logged and reported as a server error.
func writeFlowError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		flowsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrSessionExpired):
		flowsdk.ErrSessionExpired.WriteError(w)
	case errors.Is(err, service.ErrCodeExpired):
		flowsdk.ErrCodeExpired.WriteError(w)
	case errors.Is(err, service.ErrInvalidCode):
		flowsdk.ErrInvalidCode.WriteError(w)
	case errors.Is(err, service.ErrIdentityNotFound):
		flowsdk.ErrIdentityNotFound.WriteError(w)
	case errors.Is(err, service.ErrNotificationFailed):
		flowsdk.ErrNotificationFailure.WriteError(w)
	default:
		slogx.FromContext(ctx).Error("flow operation failed", "err", err)
		flowsdk.ErrServerError.WriteError(w)
	}
}
