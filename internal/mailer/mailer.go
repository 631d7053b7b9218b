// Package mailer sends the transactional mail the auth flow needs: the
// signup welcome message and password reset codes.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type Sender interface {
	Send(to, subject, html string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Campus Event Hub")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func WelcomeBody(name, role, dashboardURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Hi %s,</h2>
  <p>Thank you for signing up to <strong>Campus Event Hub</strong>!
  Your account has been created as a <strong>%s</strong>.</p>
  <p><a href="%s">Go to your dashboard</a></p>
</div>`, name, role, dashboardURL)
}

func OtpBody(code string) string {
	return fmt.Sprintf(`<h2>Your OTP Code is:</h2>
<h1>%s</h1>
<p>Valid for 10 minutes.</p>`, code)
}
