package service

import (
	"context"
	"net/mail"

	"github.com/tuskera/authflow/internal/authflow/domain"
	"github.com/tuskera/authflow/pkg/slogx"
)

// checkEmail runs the pure sanity check on the account's email before a
// code is sent to it. Findings are advisory; the login proceeds regardless.
// A missing address short-circuits the remaining checks.
func (s *FlowService) checkEmail(ctx context.Context, user domain.User) []domain.EmailIssue {
	if user.Email == "" {
		return []domain.EmailIssue{domain.EmailMissing}
	}

	var issues []domain.EmailIssue

	n, err := s.Store.Users().CountUsersByEmail(ctx, user.Email)
	if err != nil {
		// The check must never block a login; log and move on.
		slogx.FromContext(ctx).Error("email duplicate check failed", "user_id", user.ID, "error", err)
	} else if n > 1 {
		issues = append(issues, domain.EmailDuplicate)
	}

	if _, err := mail.ParseAddress(user.Email); err != nil {
		issues = append(issues, domain.EmailMalformed)
	}

	return issues
}
