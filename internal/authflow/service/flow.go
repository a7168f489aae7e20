package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/tuskera/authflow/internal/authflow/domain"
	"github.com/tuskera/authflow/internal/authflow/notify"
	"github.com/tuskera/authflow/internal/authflow/store"
	"github.com/tuskera/authflow/pkg/cryptox"
	"github.com/tuskera/authflow/pkg/idx"
	"github.com/tuskera/authflow/pkg/otpx"
	"github.com/tuskera/authflow/pkg/slogx"
	"github.com/tuskera/authflow/pkg/trustx"
)

// Defaults for the flow's three clocks.
const (
	DefaultCodeTTL    = 10 * time.Minute
	DefaultTrustTTL   = 7 * 24 * time.Hour
	DefaultSessionTTL = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
	ErrCodeExpired        = errors.New("code_expired")
	ErrInvalidCode        = errors.New("invalid_code")
	ErrIdentityNotFound   = errors.New("identity_not_found")
	ErrNotificationFailed = errors.New("notification_failure")
)

// FlowService drives the login state machine: password check, optional
// trust-token bypass, email code challenge, verification and logout.
//
// Expiry is decided by wall-clock comparison at each step; nothing runs on
// timers except housekeeping.
type FlowService struct {
	Store    store.Store
	Notifier notify.Notifier
	Trust    *trustx.Codec

	CodeTTL    time.Duration // 0 means DefaultCodeTTL
	TrustTTL   time.Duration // 0 means DefaultTrustTTL
	SessionTTL time.Duration // 0 means DefaultSessionTTL
}

// LoginResult reports where the session landed after the password step.
type LoginResult struct {
	State domain.FlowState // StateAuthenticated or StateOTPPending

	// SessionToken is the opaque cookie value for the new session.
	SessionToken string

	User domain.User

	// EmailIssues carries non-fatal findings from the email sanity check.
	EmailIssues []domain.EmailIssue
}

// VerifyResult reports a successful code verification.
type VerifyResult struct {
	User domain.User

	// TrustToken is the freshly minted device-trust cookie value.
	TrustToken string
}

// ResendResult reports where the replacement code went.
type ResendResult struct {
	Email string
}

// SessionInfo is the introspection view of a session.
type SessionInfo struct {
	State domain.FlowState
	User  domain.User // populated when State is StateAuthenticated
}

// Login runs the password step. On success it either honours a valid trust
// token (skipping the code entirely) or issues a fresh code and leaves the
// session pending.
//
// trustToken is the raw device-trust cookie value, empty when the cookie is
// absent. A token that fails to decode is treated exactly like an absent
// one: the user gets a code.
func (s *FlowService) Login(ctx context.Context, username, password, trustToken string) (*LoginResult, error) {
	now := time.Now()
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed: unknown username", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	// Non-fatal by observed behavior: a broken email only raises a warning
	// and the flow continues toward issuing a code to it.
	issues := s.checkEmail(ctx, user)
	for _, issue := range issues {
		log.Warn("email sanity check failed", "user_id", user.ID, "issue", string(issue))
	}

	if trustToken != "" {
		tok, err := s.Trust.Decode(trustToken)
		switch {
		case err != nil:
			log.Debug("ignoring undecodable trust token", "user_id", user.ID)
		case tok.Valid(user.Email, now, s.trustTTL()):
			token, err := s.createSession(ctx, domain.Session{UserID: user.ID}, now)
			if err != nil {
				return nil, err
			}
			log.Info("login authenticated via device trust", "user_id", user.ID)
			return &LoginResult{
				State:        domain.StateAuthenticated,
				SessionToken: token,
				User:         user,
				EmailIssues:  issues,
			}, nil
		default:
			log.Debug("trust token present but not honoured", "user_id", user.ID)
		}
	}

	code, err := otpx.GenerateCode()
	if err != nil {
		return nil, err
	}

	token, err := s.createSession(ctx, domain.Session{
		PendingUserID: user.ID,
		OTPCode:       code,
		OTPIssuedAt:   now.UTC().Format(time.RFC3339),
	}, now)
	if err != nil {
		return nil, err
	}

	if err := s.Notifier.SendCode(ctx, user.Email, code, user.DisplayName); err != nil {
		// The user must not be told a code was sent, so the half-built
		// session goes too.
		if sess, lookupErr := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token)); lookupErr == nil {
			_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
		}
		log.Error("failed to send login code", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info("login code issued", "user_id", user.ID)
	return &LoginResult{
		State:        domain.StateOTPPending,
		SessionToken: token,
		User:         user,
		EmailIssues:  issues,
	}, nil
}

// VerifyCode checks a submitted code against the session's pending
// challenge. Success promotes the session and mints a fresh trust token;
// an expired code or a stale session forces a restart from login.
func (s *FlowService) VerifyCode(ctx context.Context, sessionToken, code string) (*VerifyResult, error) {
	now := time.Now()
	log := slogx.FromContext(ctx)

	sess, err := s.loadLiveSession(ctx, sessionToken, now)
	if err != nil {
		return nil, err
	}

	if sess.PendingUserID == "" {
		// No challenge outstanding; send the user back to login.
		return nil, ErrSessionExpired
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.PendingUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
			log.Warn("pending identity vanished", "session_id", sess.ID, "user_id", sess.PendingUserID)
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	issuedAt, ok := sess.ChallengeIssuedAt()
	if !ok {
		_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
		return nil, ErrSessionExpired
	}

	if now.Sub(issuedAt) > s.codeTTL() {
		_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
		log.Info("login code expired", "user_id", user.ID)
		return nil, ErrCodeExpired
	}

	if !otpx.ValidFormat(code) || subtle.ConstantTimeCompare([]byte(code), []byte(sess.OTPCode)) != 1 {
		log.Info("login code mismatch", "user_id", user.ID)
		return nil, ErrInvalidCode
	}

	if err := s.Store.Sessions().MarkAuthenticated(ctx, sess.ID, user.ID); err != nil {
		return nil, err
	}

	trustToken, err := s.Trust.Encode(trustx.Token{Email: user.Email, VerifiedAt: now})
	if err != nil {
		return nil, fmt.Errorf("failed to mint trust token: %w", err)
	}

	log.Info("login code verified", "user_id", user.ID)
	return &VerifyResult{User: user, TrustToken: trustToken}, nil
}

// ResendCode replaces the session's pending code with a fresh one and sends
// it. The previous code stops verifying the moment the replacement is
// stored.
func (s *FlowService) ResendCode(ctx context.Context, sessionToken string) (*ResendResult, error) {
	now := time.Now()
	log := slogx.FromContext(ctx)

	sess, err := s.loadLiveSession(ctx, sessionToken, now)
	if err != nil {
		return nil, err
	}

	if sess.PendingUserID == "" {
		return nil, ErrSessionExpired
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.PendingUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
			log.Warn("pending identity vanished on resend", "session_id", sess.ID, "user_id", sess.PendingUserID)
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	code, err := otpx.GenerateCode()
	if err != nil {
		return nil, err
	}

	if err := s.Store.Sessions().SetChallenge(ctx, sess.ID, user.ID, code, now.UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	if err := s.Notifier.SendCode(ctx, user.Email, code, user.DisplayName); err != nil {
		log.Error("failed to resend login code", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info("login code resent", "user_id", user.ID)
	return &ResendResult{Email: user.Email}, nil
}

// Logout destroys the session. The device-trust cookie is deliberately left
// alone: the device stays trusted for the remainder of its window.
func (s *FlowService) Logout(ctx context.Context, sessionToken string) error {
	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil // already gone
		}
		return err
	}
	return s.Store.Sessions().DeleteSession(ctx, sess.ID)
}

// Inspect reports the session's current flow state without mutating it.
func (s *FlowService) Inspect(ctx context.Context, sessionToken string) (*SessionInfo, error) {
	now := time.Now()

	if sessionToken == "" {
		return &SessionInfo{State: domain.StateUnauthenticated}, nil
	}

	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &SessionInfo{State: domain.StateUnauthenticated}, nil
		}
		return nil, err
	}
	if now.After(sess.ExpiresAt) {
		return &SessionInfo{State: domain.StateUnauthenticated}, nil
	}

	info := &SessionInfo{State: sess.State()}
	if sess.UserID != "" {
		user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &SessionInfo{State: domain.StateUnauthenticated}, nil
			}
			return nil, err
		}
		info.User = user
	}
	return info, nil
}

// loadLiveSession resolves a cookie token to a non-expired session,
// deleting and reporting expired ones as ErrSessionExpired.
func (s *FlowService) loadLiveSession(ctx context.Context, sessionToken string, now time.Time) (domain.Session, error) {
	if sessionToken == "" {
		return domain.Session{}, ErrSessionExpired
	}

	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrSessionExpired
		}
		return domain.Session{}, err
	}

	if now.After(sess.ExpiresAt) {
		_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
		return domain.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// createSession mints an opaque token, stores its fingerprint with the
// template's flow fields and returns the raw token for the cookie.
func (s *FlowService) createSession(ctx context.Context, template domain.Session, now time.Time) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	template.ID = idx.New().String()
	template.TokenHash = cryptox.FingerprintToken(token)
	template.CreatedAt = now.UTC()
	template.ExpiresAt = now.UTC().Add(s.sessionTTL())

	if err := s.Store.Sessions().CreateSession(ctx, template); err != nil {
		return "", err
	}
	return token, nil
}

func (s *FlowService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

func (s *FlowService) trustTTL() time.Duration {
	if s.TrustTTL > 0 {
		return s.TrustTTL
	}
	return DefaultTrustTTL
}

func (s *FlowService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}
