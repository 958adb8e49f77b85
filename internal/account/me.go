package account

import (
	"context"

	"github.com/alexcarden/qrgen/internal/domain"
)

// Me returns the account behind a verified token's subject.
func (s *Service) Me(ctx context.Context, email string) (domain.Account, error) {
	if email == "" {
		return domain.Account{}, domain.ErrTokenInvalid()
	}
	return s.accounts.GetByEmail(ctx, email)
}
