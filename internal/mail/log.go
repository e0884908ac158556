package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes mail to the log instead of sending it. Used in
// development when no SMTP relay is configured, so verification codes can
// be read from the server output.
type LogMailer struct{}

var _ Mailer = (*LogMailer)(nil)

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	slog.Info("mail (not sent, no SMTP configured)", "to", to, "subject", subject, "body", body)
	return nil
}
