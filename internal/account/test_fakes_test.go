package account

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexcarden/qrgen/internal/domain"
	"github.com/alexcarden/qrgen/internal/security"
	"github.com/alexcarden/qrgen/internal/store/memory"
)

/*
Fake mailer: records every link instead of sending. Tests read the token
back out of the captured URL the way a user would from their inbox.
*/

type fakeMailer struct {
	mu sync.Mutex

	verifyURLs map[string][]string // email -> urls
	resetURLs  map[string][]string

	sendErr error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verifyURLs: map[string][]string{},
		resetURLs:  map[string][]string{},
	}
}

func (f *fakeMailer) SendVerification(to string, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.verifyURLs[to] = append(f.verifyURLs[to], url)
	return nil
}

func (f *fakeMailer) SendPasswordReset(to string, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.resetURLs[to] = append(f.resetURLs[to], url)
	return nil
}

func (f *fakeMailer) lastVerifyToken(t *testing.T, email string) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := f.verifyURLs[email]
	if len(urls) == 0 {
		t.Fatalf("no verification mail for %s", email)
	}
	return urls[len(urls)-1][len(verifyBase):]
}

func (f *fakeMailer) lastResetToken(t *testing.T, email string) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := f.resetURLs[email]
	if len(urls) == 0 {
		t.Fatalf("no reset mail for %s", email)
	}
	return urls[len(urls)-1][len(resetBase):]
}

const (
	verifyBase = "http://test/verify/"
	resetBase  = "http://test/reset?token="
)

type svcFixture struct {
	svc    *Service
	store  *memory.AccountStore
	mail   *fakeMailer
	signer *security.JWTSigner

	// mutable clock read through the injected now func
	mu    sync.Mutex
	clock time.Time
}

func (fx *svcFixture) advance(d time.Duration) {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	fx.clock = fx.clock.Add(d)
}

func newSvcForTest(t *testing.T) *svcFixture {
	t.Helper()

	fx := &svcFixture{
		store:  memory.NewAccountStore(),
		mail:   newFakeMailer(),
		signer: security.NewJWTSigner("test-secret", "test"),
		clock:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	fx.svc = NewService(
		fx.store,
		security.NewBcryptHasher(bcrypt.MinCost),
		fx.signer,
		security.NewTokenGenerator(),
		fx.mail,
		zerolog.New(io.Discard),
		Config{
			AccessTokenTTL:       30 * time.Minute,
			ResetTokenTTL:        time.Hour,
			VerifyEmailBaseURL:   verifyBase,
			PasswordResetBaseURL: resetBase,
		},
	).WithClock(func() time.Time {
		fx.mu.Lock()
		defer fx.mu.Unlock()
		return fx.clock
	})

	return fx
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}

const strongPassword = "Sup3rSecret!"

var errSendBoom = errors.New("smtp down")
