package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends mail through a single SMTP relay.
type SMTPMailer struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates an SMTPMailer. username may be empty for relays
// that accept unauthenticated submission (e.g. a local postfix).
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	m := &SMTPMailer{addr: addr, from: from}
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

var _ Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}
