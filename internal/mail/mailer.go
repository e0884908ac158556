// Package mail delivers transactional email, currently only the signup
// verification codes.
package mail

import "context"

// Mailer sends a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
