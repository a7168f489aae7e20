package http

import (
	"net/http"

	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/httpx"
	"github.com/tuskera/authflow/pkg/slogx"
)

// HandleSession handles GET /v1/session
//
//	@Summary		Inspect the current session
//	@Description	Reports the session's flow state without changing it. Absent or expired sessions read as
//	@Description	"unauthenticated".
//	@Tags			Flow
//	@Produce		json
//	@Success		200	{object}	flowsdk.SessionResponse	"Current flow state"
//	@Router			/v1/session [get].
func (h *FlowHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	info, err := h.FlowService.Inspect(ctx, cookieValue(r, SessionCookieName))
	if err != nil {
		log.Error("failed to inspect session", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	body := flowsdk.SessionResponse{State: string(info.State)}
	if info.User.ID != "" {
		user := toUserInfo(info.User)
		body.User = &user
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, body)
}

// HandleLogout handles POST /v1/logout
//
//	@Summary		Log out
//	@Description	Destroys the server-side session and clears the session cookie. The device-trust cookie
//	@Description	is left in place, so the next login within the trust window skips the email code.
//	@Tags			Flow
//	@Success		204	"Session destroyed"
//	@Router			/v1/logout [post].
func (h *FlowHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.FlowService.Logout(ctx, cookieValue(r, SessionCookieName)); err != nil {
		log.Error("failed to log out", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	h.Cookies.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
