package domain

// EmailIssue classifies a problem found by the email sanity check that runs
// after a successful password step. Issues are surfaced as warnings and do
// not stop the flow.
type EmailIssue string

const (
	EmailMissing   EmailIssue = "missing_email"
	EmailDuplicate EmailIssue = "duplicate_email"
	EmailMalformed EmailIssue = "malformed_email"
)
