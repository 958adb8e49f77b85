package account

import (
	"context"
	"time"

	"github.com/alexcarden/qrgen/internal/domain"
	"github.com/alexcarden/qrgen/internal/security"
)

/*
AccountRepo
-----------
Persistence port for accounts. Only describes WHAT the account service
needs, not HOW it is stored.

Token consumption is atomic at the store level: when two requests race on
the same token, exactly one of them gets the account back.
*/
type AccountRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	Create(ctx context.Context, a domain.Account) (domain.Account, error)

	ConsumeVerificationToken(ctx context.Context, token string) (domain.Account, error)
	SetResetToken(ctx context.Context, id string, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, token string, now time.Time, newHash string) (domain.Account, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by the service and the auth middleware.
*/
type TokenSigner interface {
	Sign(email string, role domain.Role, ttl time.Duration) (string, error)
	Verify(token string) (security.TokenClaims, error)
}

/*
TokenGenerator
--------------
Produces opaque one-time tokens for email verification and password reset.
*/
type TokenGenerator interface {
	Generate() (string, error)
}

/*
Mailer
------
Delivers the verification and reset links. The service builds the full URL;
the mailer does not need to understand tokens.
*/
type Mailer interface {
	SendVerification(to string, url string) error
	SendPasswordReset(to string, url string) error
}
