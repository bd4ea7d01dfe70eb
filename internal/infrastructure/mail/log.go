package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
)

// LogMailer logs the activation link instead of sending it, for local
// development without an SMTP server.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendActivation(ctx context.Context, mail ports.ActivationMail) error {
	m.log.Info().
		Str("email", mail.Email).
		Str("username", mail.Username).
		Str("token", mail.Token).
		Msg("activation email (log mailer)")
	return nil
}

var _ ports.ActivationMailer = (*LogMailer)(nil)
