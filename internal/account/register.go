package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/alexcarden/qrgen/internal/domain"
)

const maxFullNameLength = 100

// Register creates an unverified account and emails the activation link.
// The verification token travels only through email, never through the
// registration response.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return domain.Account{}, domain.ErrMissingField("full_name")
	}
	if len(fullName) > maxFullNameLength {
		return domain.Account{}, domain.ErrInvalidField("full_name", "must be at most 100 characters")
	}
	if err := checkPasswordPolicy(password); err != nil {
		return domain.Account{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Account{}, err
	}

	verifyToken, err := s.tokens.Generate()
	if err != nil {
		return domain.Account{}, err
	}

	created, err := s.accounts.Create(ctx, domain.Account{
		ID:                uuid.NewString(),
		Email:             email,
		FullName:          fullName,
		PasswordHash:      hash,
		Role:              domain.RoleUser,
		IsVerified:        false,
		VerificationToken: verifyToken,
	})
	if err != nil {
		return domain.Account{}, err
	}

	url := s.verifyEmailBaseURL + verifyToken
	if err := s.mailer.SendVerification(created.Email, url); err != nil {
		// The account exists either way; a failed send should not undo it.
		s.log.Error().Err(err).Str("email", created.Email).Msg("verification email failed")
	}

	return created, nil
}
