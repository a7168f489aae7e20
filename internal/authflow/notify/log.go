package notify

import (
	"context"

	"github.com/tuskera/authflow/pkg/slogx"
)

// LogNotifier writes codes to the log instead of sending mail. Development
// only; never wire it in prod.
type LogNotifier struct{}

func (LogNotifier) SendCode(ctx context.Context, toEmail, code, displayName string) error {
	slogx.FromContext(ctx).Info("login code (log notifier)",
		"to", toEmail,
		"code", code,
		"display_name", displayName,
	)
	return nil
}
