package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tuskera/authflow/internal/authflow/domain"
)

func TestSessionState(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.StateUnauthenticated, domain.Session{}.State())
	require.Equal(t, domain.StateOTPPending, domain.Session{PendingUserID: "u1"}.State())
	require.Equal(t, domain.StateAuthenticated, domain.Session{UserID: "u1"}.State())

	// An authenticated session with stale challenge fields still reads as
	// authenticated.
	s := domain.Session{UserID: "u1", PendingUserID: "u1", OTPCode: "123456"}
	require.Equal(t, domain.StateAuthenticated, s.State())
}

func TestChallengeIssuedAt(t *testing.T) {
	t.Parallel()

	t.Run("absent timestamp", func(t *testing.T) {
		_, ok := domain.Session{}.ChallengeIssuedAt()
		require.False(t, ok)
	})

	t.Run("rfc3339 with zone", func(t *testing.T) {
		s := domain.Session{OTPIssuedAt: "2025-06-02T10:30:00+10:00"}
		got, ok := s.ChallengeIssuedAt()
		require.True(t, ok)
		require.True(t, got.Equal(time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC)))
	})

	t.Run("naive timestamp is taken as UTC", func(t *testing.T) {
		s := domain.Session{OTPIssuedAt: "2025-06-02T10:30:00"}
		got, ok := s.ChallengeIssuedAt()
		require.True(t, ok)
		require.True(t, got.Equal(time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("unparseable timestamp", func(t *testing.T) {
		_, ok := domain.Session{OTPIssuedAt: "last tuesday"}.ChallengeIssuedAt()
		require.False(t, ok)
	})
}
