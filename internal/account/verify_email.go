package account

import (
	"context"

	"github.com/alexcarden/qrgen/internal/domain"
)

// VerifyEmail consumes a verification token. The store clears the token in
// the same statement that flips is_verified, so a second attempt with the
// same token fails even under concurrency.
func (s *Service) VerifyEmail(ctx context.Context, token string) (domain.Account, error) {
	if token == "" {
		return domain.Account{}, domain.ErrInvalidVerificationToken()
	}

	a, err := s.accounts.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return domain.Account{}, err
	}

	s.log.Info().Str("account_id", a.ID).Msg("email verified")
	return a, nil
}
