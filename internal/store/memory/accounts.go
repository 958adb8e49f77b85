// Package memory is an in-memory Account Store used by tests and by local
// development without Postgres. It mirrors the Postgres store's semantics,
// including single-winner token consumption under concurrency.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/alexcarden/qrgen/internal/domain"
)

type AccountStore struct {
	mu      sync.Mutex
	byID    map[string]domain.Account
	byEmail map[string]string // email -> id
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return s.byID[id], nil
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (s *AccountStore) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if _, exists := s.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyRegistered()
	}
	if a.Role == "" {
		a.Role = domain.RoleUser
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	s.byID[a.ID] = a
	s.byEmail[a.Email] = a.ID
	return a, nil
}

func (s *AccountStore) ConsumeVerificationToken(ctx context.Context, token string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return domain.Account{}, domain.ErrInvalidVerificationToken()
	}
	for id, a := range s.byID {
		if a.VerificationToken == token {
			a.IsVerified = true
			a.VerificationToken = ""
			a.UpdatedAt = time.Now()
			s.byID[id] = a
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrInvalidVerificationToken()
}

func (s *AccountStore) SetResetToken(ctx context.Context, id string, token string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.PasswordResetToken = token
	exp := expires
	a.PasswordResetExpires = &exp
	a.UpdatedAt = time.Now()
	s.byID[id] = a
	return nil
}

func (s *AccountStore) ConsumeResetToken(ctx context.Context, token string, now time.Time, newHash string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return domain.Account{}, domain.ErrInvalidOrExpiredResetToken()
	}
	for id, a := range s.byID {
		if a.PasswordResetToken != token {
			continue
		}
		if a.PasswordResetExpires == nil || !now.Before(*a.PasswordResetExpires) {
			// Expired tokens are excluded, not purged; invalidation is lazy.
			return domain.Account{}, domain.ErrInvalidOrExpiredResetToken()
		}
		a.PasswordHash = newHash
		a.PasswordResetToken = ""
		a.PasswordResetExpires = nil
		a.UpdatedAt = time.Now()
		s.byID[id] = a
		return a, nil
	}
	return domain.Account{}, domain.ErrInvalidOrExpiredResetToken()
}

func (s *AccountStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	t := at
	a.LastLogin = &t
	a.UpdatedAt = time.Now()
	s.byID[id] = a
	return nil
}
