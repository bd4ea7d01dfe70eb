// Package mail dispatches the account activation email.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

// SMTPMailerConfig configures the SMTP activation mailer.
type SMTPMailerConfig struct {
	// Addr is the SMTP server ("host:port").
	Addr       string
	SenderName string
	SenderAddr string
	// CopySender adds the sender address as a recipient so operators get a
	// copy of every activation email.
	CopySender bool
	// ActivationBaseURL is the link target; the token is appended as a
	// query parameter.
	ActivationBaseURL string
}

// SMTPMailer implements ports.ActivationMailer over plain SMTP. The send is
// synchronous: the signup flow observes a single success or failure outcome
// before it reports back.
type SMTPMailer struct {
	cfg SMTPMailerConfig
	log zerolog.Logger

	// sendMail is a seam for testing smtp.SendMail.
	sendMail func(addr, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPMailerConfig, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		log: log,
		sendMail: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

func (m *SMTPMailer) SendActivation(ctx context.Context, mail ports.ActivationMail) error {
	recipients := []string{mail.Email}
	if m.cfg.CopySender {
		recipients = append(recipients, m.cfg.SenderAddr)
	}
	link := fmt.Sprintf("%s?token=%s", m.cfg.ActivationBaseURL, mail.Token)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.cfg.SenderName, m.cfg.SenderAddr)
	fmt.Fprintf(&msg, "To: %s <%s>\r\n", mail.Username, mail.Email)
	msg.WriteString("Subject: Activate your account\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("One more step to activate your account.\r\n\r\n")
	fmt.Fprintf(&msg, "Visit the following link to complete the sign-up process: %s\r\n", link)

	// SMTP delivery is all-or-nothing here: a rejected recipient fails the
	// whole send, which is exactly the fewer-deliveries-than-intended case.
	if err := m.sendMail(m.cfg.Addr, m.cfg.SenderAddr, recipients, []byte(msg.String())); err != nil {
		m.log.Warn().Err(err).Str("email", mail.Email).Msg("activation email send failed")
		return fmt.Errorf("%w: %v", domerrors.ErrDispatch, err)
	}
	return nil
}

var _ ports.ActivationMailer = (*SMTPMailer)(nil)
