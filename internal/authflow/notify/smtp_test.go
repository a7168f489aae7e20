package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSMTPRequiresHostAndPort(t *testing.T) {
	t.Parallel()

	_, err := NewSMTP(SMTPConfig{Port: 25})
	require.ErrorIs(t, err, ErrSMTPHostPortRequired)

	_, err = NewSMTP(SMTPConfig{Host: "mail.example.com"})
	require.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "mail.example.com", Port: 587, From: "noreply@example.com"})
	require.NoError(t, err)
	require.Equal(t, "mail.example.com:587", s.addr)
}

func TestRenderCodeMessage(t *testing.T) {
	t.Parallel()

	subject, body := renderCodeMessage("042317", "alice")
	require.Equal(t, "Your verification code", subject)
	require.Contains(t, body, "Hi alice,")
	require.Contains(t, body, "042317")
	require.Contains(t, body, "10 minutes")

	_, body = renderCodeMessage("042317", "")
	require.Contains(t, body, "Hi there,")
}

func TestSendCodeHonoursContextCancellation(t *testing.T) {
	t.Parallel()

	s, err := NewSMTP(SMTPConfig{Host: "mail.example.com", Port: 587, From: "noreply@example.com"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.SendCode(ctx, "a@x.com", "123456", "alice")
	require.ErrorIs(t, err, context.Canceled)
}
