package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type Mailer struct {
	host     string
	port     int
	from     string
	password string
	log      *zerolog.Logger
}

func New(host string, port int, from, password string, log *zerolog.Logger) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password, log: log}
}

// SendRegistrationEmail confirms a session registration. With no sender
// configured the mail is skipped, so local setups work without SMTP.
func (m *Mailer) SendRegistrationEmail(recipient, activityTitle, date, startTime, room string) error {
	if m.from == "" {
		m.log.Debug().Str("recipient", recipient).Msg("smtp sender not configured, skipping e-mail")
		return nil
	}

	subject := "Registration confirmed"
	body := fmt.Sprintf(
		"Hello!\n\nYour registration for \"%s\" is confirmed.\nDate: %s at %s, room %s.\n\nSee you there!",
		activityTitle, date, startTime, room,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, recipient, subject, body,
	)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send e-mail to %s: %v", recipient, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Msgf("registration e-mail sent to %s", recipient)
	return nil
}
