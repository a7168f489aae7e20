// Package notify delivers login codes to users. The flow only depends on
// the Notifier interface; SMTP is the production implementation and the log
// mailer backs local development.
package notify

import "context"

// Notifier sends a login code to an email address. Implementations render
// the code into a message and dispatch it synchronously; an error means the
// user must not be told a code was sent.
type Notifier interface {
	SendCode(ctx context.Context, toEmail, code, displayName string) error
}
