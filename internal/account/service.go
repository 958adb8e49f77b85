// Package account implements the account lifecycle: registration, email
// verification, login, and password reset.
package account

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alexcarden/qrgen/internal/domain"
)

type Service struct {
	accounts AccountRepo
	hasher   PasswordHasher
	signer   TokenSigner
	tokens   TokenGenerator
	mailer   Mailer
	log      zerolog.Logger

	accessTTL time.Duration
	resetTTL  time.Duration

	// URLs the one-time token is appended to when building email links.
	verifyEmailBaseURL   string // e.g. https://host/api/v1/users/verify/
	passwordResetBaseURL string // e.g. https://frontend/reset-password?token=

	// injected clock, so expiry behavior is testable
	now func() time.Time
}

type Config struct {
	AccessTokenTTL       time.Duration
	ResetTokenTTL        time.Duration
	VerifyEmailBaseURL   string
	PasswordResetBaseURL string
}

func NewService(
	accounts AccountRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	tokens TokenGenerator,
	mailer Mailer,
	log zerolog.Logger,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	resetTTL := cfg.ResetTokenTTL
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		signer:   signer,
		tokens:   tokens,
		mailer:   mailer,
		log:      log,

		accessTTL: accessTTL,
		resetTTL:  resetTTL,

		verifyEmailBaseURL:   cfg.VerifyEmailBaseURL,
		passwordResetBaseURL: cfg.PasswordResetBaseURL,

		now: time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to move time past
// the reset-token expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// AuthToken is the token output for handlers/DTO mapping.
type AuthToken struct {
	AccessToken string
	TokenType   string // "bearer"
	ExpiresIn   int64  // seconds
}

type LoginResult struct {
	Account domain.Account
	Token   AuthToken
}

func (s *Service) issueToken(email string, role domain.Role) (AuthToken, error) {
	access, err := s.signer.Sign(email, role, s.accessTTL)
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}
