package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrSMTPHostPortRequired is returned when Host/Port are missing.
var ErrSMTPHostPortRequired = errors.New("smtp host and port are required")

// SMTPConfig configures the SMTP notifier.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username and Password enable PLAIN auth when both are set.
	Username string
	Password string
	// From is the sender address on outgoing mail.
	From string
}

// SMTP delivers codes over net/smtp.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTP constructs an SMTP notifier.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}, nil
}

// SendCode renders and dispatches the verification mail. The send is
// blocking; callers treat any error as "code not sent".
func (s *SMTP) SendCode(ctx context.Context, toEmail, code, displayName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body := renderCodeMessage(code, displayName)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(s.addr, s.auth, s.from, []string{toEmail}, []byte(msg.String()))
}

func renderCodeMessage(code, displayName string) (subject, body string) {
	name := displayName
	if name == "" {
		name = "there"
	}

	subject = "Your verification code"
	body = fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s.\n\nIt expires in 10 minutes. If you did not try to sign in, you can ignore this message.\n",
		name, code,
	)
	return subject, body
}
