package account

import (
	"context"

	"github.com/alexcarden/qrgen/internal/domain"
)

// Authenticate checks email + password and returns the account. Unknown
// email and wrong password both surface as ErrInvalidCredentials so the
// response does not reveal which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	if email == "" || password == "" {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "account_not_found") {
			return domain.Account{}, domain.ErrInvalidCredentials()
		}
		return domain.Account{}, err
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}

	// Checked only after the password matched, so an unverified account
	// still cannot be probed with guessed passwords.
	if !a.IsVerified {
		return domain.Account{}, domain.ErrEmailNotVerified()
	}

	return a, nil
}

// Login authenticates and returns a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	a, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	tok, err := s.issueToken(a.Email, a.Role)
	if err != nil {
		return LoginResult{}, err
	}

	at := s.now()
	if err := s.accounts.RecordLogin(ctx, a.ID, at); err != nil {
		s.log.Warn().Err(err).Str("account_id", a.ID).Msg("last_login update failed")
	} else {
		a.LastLogin = &at
	}

	return LoginResult{Account: a, Token: tok}, nil
}
