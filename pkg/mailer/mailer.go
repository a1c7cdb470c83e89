// Package mailer sends the notification mails of the application.
//
// Mail is best effort throughout: a failure to send is logged and never
// propagates to the request which triggered it.
package mailer

import (
	"context"

	"gopkg.in/gomail.v2"
)

type Mail struct {
	To      []string
	Subject string
	Body    string // text/plain
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(ctx context.Context, mail Mail) error

func (f MailerFunc) Send(ctx context.Context, mail Mail) error {
	return f(ctx, mail)
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP creates a Mailer over plain SMTP (STARTTLS when offered).
func NewSMTP(host string, port int, username string, password string, from string) *smtpMailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

var _ Mailer = &smtpMailer{}

func (m *smtpMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Body)

	return m.dialer.DialAndSend(msg)
}
