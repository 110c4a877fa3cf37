package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP settings for sending email.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional email for the auth service.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

// New creates a Mailer. Callers only construct one when every SMTP setting is
// present; an unconfigured deployment runs without mail.
func New(cfg Config) *Mailer {
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send sends a single plain-text email.
func (m *Mailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// SendWelcome greets a newly created user.
func (m *Mailer) SendWelcome(name string, email string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. You can now sign in with your linked social account.\n", name)

	return m.Send([]string{email}, "Welcome", body)
}
