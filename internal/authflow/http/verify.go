package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tuskera/authflow/internal/authflow/service"
	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/httpx"
	"github.com/tuskera/authflow/pkg/slogx"
)

// HandleVerify handles POST /v1/login/verify
//
//	@Summary		Submit the emailed verification code
//	@Description	Checks the six-digit code against the pending challenge. Success promotes the session to
//	@Description	authenticated and sets the device-trust cookie. An expired code or stale session clears
//	@Description	the session cookie; the client restarts from login.
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		flowsdk.VerifyRequest	true	"Verification code"
//	@Success		200		{object}	flowsdk.VerifyResponse	"Authenticated"
//	@Failure		400		{object}	flowsdk.ErrorResponse	"Malformed request or wrong code"
//	@Failure		401		{object}	flowsdk.ErrorResponse	"Session or code expired, restart from login"
//	@Router			/v1/login/verify [post].
func (h *FlowHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req flowsdk.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse verify request", "err", err)
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sessionToken := cookieValue(r, SessionCookieName)

	res, err := h.FlowService.VerifyCode(ctx, sessionToken, req.Code)
	if err != nil {
		if flowRestartRequired(err) {
			h.Cookies.clearSessionCookie(w)
		}
		writeFlowError(w, ctx, err)
		return
	}

	h.Cookies.setTrustCookie(w, res.TrustToken)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, flowsdk.VerifyResponse{
		State: flowsdk.StateAuthenticated,
		User:  toUserInfo(res.User),
	})
}

// HandleResend handles POST /v1/login/resend
//
//	@Summary		Resend the verification code
//	@Description	Issues a fresh code for the pending session and emails it. The previous code stops
//	@Description	working immediately.
//	@Tags			Flow
//	@Produce		json
//	@Success		202	{object}	flowsdk.ResendResponse	"Fresh code emailed"
//	@Failure		401	{object}	flowsdk.ErrorResponse	"No pending session, restart from login"
//	@Failure		502	{object}	flowsdk.ErrorResponse	"Verification mail could not be sent"
//	@Router			/v1/login/resend [post].
func (h *FlowHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionToken := cookieValue(r, SessionCookieName)

	res, err := h.FlowService.ResendCode(ctx, sessionToken)
	if err != nil {
		if flowRestartRequired(err) {
			h.Cookies.clearSessionCookie(w)
		}
		writeFlowError(w, ctx, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusAccepted, flowsdk.ResendResponse{
		State: flowsdk.StateOTPPending,
		Email: res.Email,
	})
}

// flowRestartRequired reports whether the error means the session is gone
// and its cookie should be cleared.
func flowRestartRequired(err error) bool {
	return errors.Is(err, service.ErrSessionExpired) ||
		errors.Is(err, service.ErrCodeExpired) ||
		errors.Is(err, service.ErrIdentityNotFound)
}
