package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tuskera/authflow/internal/authflow/service"
	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/httpx"
	"github.com/tuskera/authflow/pkg/slogx"
)

// UsersHandler serves operator account provisioning.
type UsersHandler struct {
	UserService *service.UserService

	// AdminToken authorises requests via the X-Admin-Token header. Empty
	// disables the endpoint entirely.
	AdminToken string
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Provision an account
//	@Description	Creates a user with an Argon2id-hashed password. Operator-only; requires the
//	@Description	X-Admin-Token header. Email may be empty, malformed or shared with another account;
//	@Description	that only surfaces as a warning at login time.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			X-Admin-Token	header		string						true	"Admin token"
//	@Param			request			body		flowsdk.CreateUserRequest	true	"Account details"
//	@Success		201				{object}	flowsdk.UserInfo			"Created account"
//	@Failure		400				{object}	flowsdk.ErrorResponse		"Malformed request"
//	@Failure		401				{object}	flowsdk.ErrorResponse		"Missing or wrong admin token"
//	@Failure		409				{object}	flowsdk.ErrorResponse		"Username already taken"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.AdminToken == "" {
		flowsdk.ErrUnauthorized.WriteError(w)
		return
	}
	given := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(given), []byte(h.AdminToken)) != 1 {
		log.Warn("rejected user creation with bad admin token")
		flowsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req flowsdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse create user request", "err", err)
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.CreateUser(ctx, service.CreateUserRequest{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired), errors.Is(err, service.ErrPasswordRequired):
			flowsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrUsernameAlreadyTaken):
			flowsdk.NewFlowError(http.StatusConflict, "username_taken", "that username is already taken").WriteError(w)
		default:
			log.Error("failed to create user", "err", err)
			flowsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, toUserInfo(user))
}
