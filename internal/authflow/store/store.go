package store

import (
	"context"
	"errors"

	"github.com/tuskera/authflow/internal/authflow/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep the user directory and the session
// store separate, mirroring how the flow consumes them.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. Preferred over Tx for multi-step writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store with explicit Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the user directory consumed by the login flow.
type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during the password step.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CountUsersByEmail reports how many accounts share an email. The sanity
	// check treats anything above one as an inconsistency.
	CountUsersByEmail(ctx context.Context, email string) (int, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a user. Authenticated sessions cascade; pending
	// references are left dangling for the flow's identity guard to catch.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

// Sessions is the per-browser session store. Lookups go through the cookie
// token's fingerprint; mutations go through the session id.
type Sessions interface {
	// CreateSession inserts a new session row.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns a session by the fingerprint of its
	// cookie token, regardless of expiry; expiry is the caller's decision.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// SetChallenge records a pending code, replacing any previous challenge
	// on the session. issuedAt is stored as given (RFC 3339).
	SetChallenge(ctx context.Context, sessionID, pendingUserID, code, issuedAt string) error

	// MarkAuthenticated promotes the session to authenticated for userID and
	// clears the challenge fields.
	MarkAuthenticated(ctx context.Context, sessionID, userID string) error

	// DeleteSession removes a session row.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpiredSessions removes sessions past their expiry (housekeeping).
	DeleteExpiredSessions(ctx context.Context) error
}
