package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tuskera/authflow/internal/authflow/domain"
	"github.com/tuskera/authflow/internal/authflow/store"
	"github.com/tuskera/authflow/internal/authflow/store/drivers/sqlite"
	"github.com/tuskera/authflow/pkg/cryptox"
	"github.com/tuskera/authflow/pkg/idx"
)

func newTestUserService(t *testing.T) (*UserService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	cryptox.SetPepperPath(t.TempDir() + "/pepper")
	return &UserService{Store: st}, st
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	user, err := svc.CreateUser(ctx, CreateUserRequest{
		Username:    "  alice ",
		Password:    "pw-alice",
		Email:       "alice@example.com",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "Alice", user.DisplayName)
	require.NoError(t, cryptox.VerifyPassword("pw-alice", user.PasswordHash))

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)
}

func TestCreateUserValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	_, err := svc.CreateUser(ctx, CreateUserRequest{Password: "pw"})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "alice"})
	require.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, ErrUsernameAlreadyTaken)
}

func TestCreateUserDefaultsDisplayName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	user, err := svc.CreateUser(ctx, CreateUserRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "bob", user.DisplayName)
	require.Empty(t, user.Email)
}

func TestHousekeepingDeletesExpiredSessions(t *testing.T) {
	ctx := context.Background()
	_, st := newTestUserService(t)

	now := time.Now().UTC()
	stale := domain.Session{
		ID:        idx.New().String(),
		TokenHash: "fingerprint-stale",
		CreatedAt: now.Add(-48 * time.Hour),
		ExpiresAt: now.Add(-24 * time.Hour),
	}
	live := domain.Session{
		ID:        idx.New().String(),
		TokenHash: "fingerprint-live",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, stale))
	require.NoError(t, st.Sessions().CreateSession(ctx, live))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hs := NewHousekeepingService(st, logger, time.Hour)

	// Start runs a cleanup pass immediately; Stop waits for it.
	hs.Start()
	hs.Stop()

	_, err := st.Sessions().GetSessionByTokenHash(ctx, "fingerprint-stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Sessions().GetSessionByTokenHash(ctx, "fingerprint-live")
	require.NoError(t, err)
}
