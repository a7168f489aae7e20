package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tuskera/authflow/internal/authflow/domain"
	"github.com/tuskera/authflow/internal/authflow/store"
)

type sessionsRepo struct {
	q dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sessions (id, token_hash, user_id, pending_user_id, otp_code, otp_issued_at, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TokenHash,
		nullable(s.UserID), nullable(s.PendingUserID), nullable(s.OTPCode), nullable(s.OTPIssuedAt),
		formatTime(s.CreatedAt), formatTime(s.ExpiresAt))
	return err
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, token_hash, user_id, pending_user_id, otp_code, otp_issued_at, created_at, expires_at
		 FROM sessions WHERE token_hash = ?`, tokenHash)

	var s domain.Session
	var userID, pendingUserID, otpCode, otpIssuedAt sql.NullString
	var createdAt, expiresAt string
	err := row.Scan(&s.ID, &s.TokenHash, &userID, &pendingUserID, &otpCode, &otpIssuedAt, &createdAt, &expiresAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.UserID = userID.String
	s.PendingUserID = pendingUserID.String
	s.OTPCode = otpCode.String
	s.OTPIssuedAt = otpIssuedAt.String
	s.CreatedAt = parseTime(createdAt)
	s.ExpiresAt = parseTime(expiresAt)
	return s, nil
}

// SetChallenge replaces the session's pending challenge wholesale. Resend
// relies on this overwrite-not-append behavior.
func (r *sessionsRepo) SetChallenge(ctx context.Context, sessionID, pendingUserID, code, issuedAt string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET pending_user_id = ?, otp_code = ?, otp_issued_at = ?, user_id = NULL
		 WHERE id = ?`,
		pendingUserID, code, issuedAt, sessionID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) MarkAuthenticated(ctx context.Context, sessionID, userID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET user_id = ?, pending_user_id = NULL, otp_code = NULL, otp_issued_at = NULL
		 WHERE id = ?`,
		userID, sessionID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(time.Now()))
	return err
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
