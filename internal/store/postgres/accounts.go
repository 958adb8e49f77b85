package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alexcarden/qrgen/internal/domain"
)

// pgUniqueViolation is the Postgres error code for unique constraint breaks.
const pgUniqueViolation = "23505"

const accountColumns = `id, email, full_name, password_hash, role, is_verified,
	verification_token, password_reset_token, password_reset_expires,
	last_login, created_at, updated_at`

// AccountStore persists accounts in Postgres.
//
// Duplicate emails are caught via the unique constraint rather than a
// pre-check, and both token-consumption operations are single UPDATE
// statements, so concurrent registrations and concurrent consumption of the
// same token each resolve to exactly one winner without application locks.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

type accountRow struct {
	ID                   string
	Email                string
	FullName             string
	PasswordHash         string
	Role                 string
	IsVerified           bool
	VerificationToken    sql.NullString
	PasswordResetToken   sql.NullString
	PasswordResetExpires sql.NullTime
	LastLogin            sql.NullTime
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.ID,
		&ar.Email,
		&ar.FullName,
		&ar.PasswordHash,
		&ar.Role,
		&ar.IsVerified,
		&ar.VerificationToken,
		&ar.PasswordResetToken,
		&ar.PasswordResetExpires,
		&ar.LastLogin,
		&ar.CreatedAt,
		&ar.UpdatedAt,
	)
	return ar, err
}

func toDomain(ar accountRow) domain.Account {
	a := domain.Account{
		ID:                ar.ID,
		Email:             ar.Email,
		FullName:          ar.FullName,
		PasswordHash:      ar.PasswordHash,
		Role:              domain.Role(ar.Role),
		IsVerified:        ar.IsVerified,
		VerificationToken: ar.VerificationToken.String,
		CreatedAt:         ar.CreatedAt,
		UpdatedAt:         ar.UpdatedAt,
	}
	if ar.PasswordResetToken.Valid {
		a.PasswordResetToken = ar.PasswordResetToken.String
	}
	if ar.PasswordResetExpires.Valid {
		t := ar.PasswordResetExpires.Time
		a.PasswordResetExpires = &t
	}
	if ar.LastLogin.Valid {
		t := ar.LastLogin.Time
		a.LastLogin = &t
	}
	return a
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1;`

	ar, err := scanAccount(s.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ar), nil
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 LIMIT 1;`

	ar, err := scanAccount(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ar), nil
}

// Create inserts a new account. A duplicate email surfaces as
// ErrEmailAlreadyRegistered via the unique constraint; there is no
// check-then-insert race window.
func (s *AccountStore) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}
	if a.Role == "" {
		a.Role = domain.RoleUser
	}

	const q = `
INSERT INTO accounts (id, email, full_name, password_hash, role, is_verified, verification_token)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + accountColumns + `;`

	ar, err := scanAccount(s.db.QueryRowContext(ctx, q,
		a.ID, a.Email, a.FullName, a.PasswordHash, string(a.Role), a.IsVerified,
		nullString(a.VerificationToken),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Account{}, domain.ErrEmailAlreadyRegistered()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ar), nil
}

// ConsumeVerificationToken atomically marks the matching account verified
// and clears its token. A token that was never issued, or was already
// consumed, matches no row.
func (s *AccountStore) ConsumeVerificationToken(ctx context.Context, token string) (domain.Account, error) {
	if token == "" {
		return domain.Account{}, domain.ErrInvalidVerificationToken()
	}

	const q = `
UPDATE accounts
SET is_verified = TRUE,
    verification_token = NULL,
    updated_at = NOW()
WHERE verification_token = $1
RETURNING ` + accountColumns + `;`

	ar, err := scanAccount(s.db.QueryRowContext(ctx, q, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrInvalidVerificationToken()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ar), nil
}

// SetResetToken stores a pending password reset. A repeated request simply
// replaces any previous pending token.
func (s *AccountStore) SetResetToken(ctx context.Context, id string, token string, expires time.Time) error {
	const q = `
UPDATE accounts
SET password_reset_token = $2,
    password_reset_expires = $3,
    updated_at = NOW()
WHERE id = $1;`

	res, err := s.db.ExecContext(ctx, q, id, token, expires)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}

// ConsumeResetToken atomically rewrites the password hash and clears both
// reset fields, but only while the token is unexpired. Expired rows are
// excluded here rather than purged; invalidation is lazy.
func (s *AccountStore) ConsumeResetToken(ctx context.Context, token string, now time.Time, newHash string) (domain.Account, error) {
	if token == "" {
		return domain.Account{}, domain.ErrInvalidOrExpiredResetToken()
	}

	const q = `
UPDATE accounts
SET password_hash = $2,
    password_reset_token = NULL,
    password_reset_expires = NULL,
    updated_at = NOW()
WHERE password_reset_token = $1
  AND password_reset_expires > $3
RETURNING ` + accountColumns + `;`

	ar, err := scanAccount(s.db.QueryRowContext(ctx, q, token, newHash, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrInvalidOrExpiredResetToken()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ar), nil
}

// RecordLogin updates last_login after a successful authentication.
func (s *AccountStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE accounts SET last_login = $2, updated_at = NOW() WHERE id = $1;`

	res, err := s.db.ExecContext(ctx, q, id, at)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}
