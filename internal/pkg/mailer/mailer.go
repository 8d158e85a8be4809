package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hearthside/events-api/internal/config"
)

// Mailer delivers transactional mail over SMTP. Delivery is best effort:
// callers fire these from the request path and only log failures.
type Mailer struct {
	conf   *config.SMTPConfig
	dialer *gomail.Dialer
}

func New(conf *config.SMTPConfig) *Mailer {
	return &Mailer{
		conf:   conf,
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
	}
}

func (m *Mailer) SendRSVPConfirmation(to, eventName, status string) error {
	var body string
	switch status {
	case "confirmed":
		body = fmt.Sprintf("Your RSVP for %v is confirmed. See you there!", eventName)
	default:
		body = fmt.Sprintf("You're on the waitlist for %v. We'll reach out if a spot opens up.", eventName)
	}

	return m.send([]string{to}, fmt.Sprintf("RSVP received: %v", eventName), body)
}

func (m *Mailer) SendSubmissionReceived(to, kind, name string) error {
	body := fmt.Sprintf("Thanks %v! We received your %v submission and will be in touch.", name, kind)

	return m.send([]string{to}, "Submission received", body)
}

func (m *Mailer) NotifyCuration(kind, name, email string) error {
	body := fmt.Sprintf("New %v submission from %v <%v>.", kind, name, email)

	return m.send([]string{m.conf.CurationAddress}, fmt.Sprintf("New %v submission", kind), body)
}

func (m *Mailer) send(to []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.conf.FromAddress, m.conf.FromName)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("dialer.DialAndSend -> %w", err)
	}

	return nil
}
