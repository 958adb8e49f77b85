// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends verification and password-reset mail over SMTP.
type Mailer struct {
	config *smtpConfig
	dialer *gomail.Dialer
}

// Email represents a single outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// New builds a Mailer from SMTP_* environment variables. It returns an
// error when the configuration is incomplete; callers may then fall back
// to the log-only mailer for development.
func New(logger *zerolog.Logger) (*Mailer, error) {
	cfg, err := newSMTPConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("smtp mailer configured")

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send delivers a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	return m.dialer.DialAndSend(msg)
}

// SendVerification emails the account-activation link.
func (m *Mailer) SendVerification(to string, url string) error {
	return m.Send(Email{
		To:      []string{to},
		Subject: "Verify your email address",
		Body: "Welcome!\n\n" +
			"Please confirm your email address by opening the link below:\n\n" +
			url + "\n\n" +
			"If you did not create this account, you can ignore this message.\n",
	})
}

// SendPasswordReset emails the password-reset link. The link expires; the
// expiry window is stated in the body so stale mail explains itself.
func (m *Mailer) SendPasswordReset(to string, url string) error {
	return m.Send(Email{
		To:      []string{to},
		Subject: "Reset your password",
		Body: "A password reset was requested for your account.\n\n" +
			"Open the link below within one hour to choose a new password:\n\n" +
			url + "\n\n" +
			"If you did not request a reset, you can ignore this message.\n",
	})
}

// smtpConfig holds SMTP configuration for sending emails.
type smtpConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

func newSMTPConfig() (*smtpConfig, error) {
	cfg, err := env.ParseAs[smtpConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse smtp environment: %w", err)
	}
	return &cfg, nil
}

func (c *smtpConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}
	return nil
}
