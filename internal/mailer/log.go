package mailer

import "github.com/rs/zerolog"

// LogMailer writes mail contents to the log instead of sending. Used in
// development when SMTP is not configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendVerification(to string, url string) error {
	m.log.Info().Str("to", to).Str("url", url).Msg("verification email (smtp disabled)")
	return nil
}

func (m *LogMailer) SendPasswordReset(to string, url string) error {
	m.log.Info().Str("to", to).Str("url", url).Msg("password reset email (smtp disabled)")
	return nil
}
