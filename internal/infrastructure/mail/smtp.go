// Package mail implements the notification port over plain SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// Config captures the SMTP settings for outbound notifications.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPNotifier sends templated messages through an external SMTP relay.
type SMTPNotifier struct {
	cfg Config
}

func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send delivers one message. The context is accepted for interface symmetry;
// net/smtp has no cancellation hook, so delivery runs to completion or error.
func (n *SMTPNotifier) Send(_ context.Context, to, subject, body string) error {
	addr := n.cfg.Host + ":" + n.cfg.Port

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	msg := []byte("From: " + n.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
