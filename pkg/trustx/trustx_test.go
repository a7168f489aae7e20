package trustx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tuskera/authflow/pkg/trustx"
)

func newCodec(t *testing.T) *trustx.Codec {
	t.Helper()
	c, err := trustx.NewCodec([]byte("test-secret"))
	require.NoError(t, err)
	return c
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := trustx.NewCodec(nil)
	require.ErrorIs(t, err, trustx.ErrEmptySecret)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	at := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	raw, err := c.Encode(trustx.Token{Email: "a@x.com", VerifiedAt: at})
	require.NoError(t, err)

	decoded, err := c.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", decoded.Email)
	require.True(t, decoded.VerifiedAt.Equal(at))

	// Re-encoding the decoded token yields a token that decodes identically.
	again, err := c.Encode(decoded)
	require.NoError(t, err)
	redecoded, err := c.Decode(again)
	require.NoError(t, err)
	require.Equal(t, decoded, redecoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	for _, raw := range []string{
		"",
		"garbage",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.e30.", // alg=none
	} {
		_, err := c.Decode(raw)
		require.ErrorIs(t, err, trustx.ErrMalformed, "input %q", raw)
	}
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	ours := newCodec(t)
	theirs, err := trustx.NewCodec([]byte("another-secret"))
	require.NoError(t, err)

	raw, err := theirs.Encode(trustx.Token{Email: "a@x.com", VerifiedAt: time.Now()})
	require.NoError(t, err)

	_, err = ours.Decode(raw)
	require.ErrorIs(t, err, trustx.ErrMalformed)
}

func TestValid(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	t.Run("fresh matching token passes", func(t *testing.T) {
		tok := trustx.Token{Email: "a@x.com", VerifiedAt: now.Add(-24 * time.Hour)}
		require.True(t, tok.Valid("a@x.com", now, week))
	})

	t.Run("exactly at the boundary still passes", func(t *testing.T) {
		tok := trustx.Token{Email: "a@x.com", VerifiedAt: now.Add(-week)}
		require.True(t, tok.Valid("a@x.com", now, week))
	})

	t.Run("older than the window fails", func(t *testing.T) {
		tok := trustx.Token{Email: "a@x.com", VerifiedAt: now.Add(-week - time.Second)}
		require.False(t, tok.Valid("a@x.com", now, week))
	})

	t.Run("email mismatch fails regardless of age", func(t *testing.T) {
		tok := trustx.Token{Email: "b@x.com", VerifiedAt: now}
		require.False(t, tok.Valid("a@x.com", now, week))
	})

	t.Run("empty email never passes", func(t *testing.T) {
		tok := trustx.Token{Email: "", VerifiedAt: now}
		require.False(t, tok.Valid("", now, week))
	})
}
