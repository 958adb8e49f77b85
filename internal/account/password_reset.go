package account

import (
	"context"

	"github.com/alexcarden/qrgen/internal/domain"
)

// RequestPasswordReset issues a one-time reset token and emails the link.
// IMPORTANT: non-enumerating. An unknown email returns nil just like a
// known one; the only externally visible difference is whether mail
// arrives. Failures after the lookup are logged, not returned.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if !domain.Is(err, "account_not_found") {
			s.log.Error().Err(err).Msg("password reset lookup failed")
		}
		return nil
	}

	token, err := s.tokens.Generate()
	if err != nil {
		s.log.Error().Err(err).Msg("password reset token generation failed")
		return nil
	}

	// A repeat request replaces any pending token; only the newest link works.
	if a.HasPendingReset(s.now()) {
		s.log.Info().Str("account_id", a.ID).Msg("pending reset token superseded")
	}

	expires := s.now().Add(s.resetTTL)
	if err := s.accounts.SetResetToken(ctx, a.ID, token, expires); err != nil {
		s.log.Error().Err(err).Str("account_id", a.ID).Msg("password reset token store failed")
		return nil
	}

	url := s.passwordResetBaseURL + token
	if err := s.mailer.SendPasswordReset(a.Email, url); err != nil {
		s.log.Error().Err(err).Str("account_id", a.ID).Msg("password reset email failed")
	}
	return nil
}

// ConfirmPasswordReset consumes the token and sets the new password. The
// new password is policy-checked before the token is consumed, so a weak
// password does not burn a valid token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrInvalidOrExpiredResetToken()
	}
	if err := checkPasswordPolicy(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	a, err := s.accounts.ConsumeResetToken(ctx, token, s.now(), hash)
	if err != nil {
		return err
	}

	s.log.Info().Str("account_id", a.ID).Msg("password reset confirmed")
	return nil
}
