package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexcarden/qrgen/internal/account"
	"github.com/alexcarden/qrgen/internal/ratelimit"
	"github.com/alexcarden/qrgen/internal/security"
	"github.com/alexcarden/qrgen/internal/store/memory"
	"github.com/alexcarden/qrgen/internal/transport/http/middleware"
	"github.com/alexcarden/qrgen/internal/transport/http/response"
	"github.com/alexcarden/qrgen/internal/transport/http/router"
)

const (
	testVerifyBase = "http://test/api/v1/users/verify/"
	testResetBase  = "http://test/reset?token="
)

type capturingMailer struct {
	mu         sync.Mutex
	verifyURLs map[string]string
	resetURLs  map[string]string
}

func newCapturingMailer() *capturingMailer {
	return &capturingMailer{
		verifyURLs: map[string]string{},
		resetURLs:  map[string]string{},
	}
}

func (m *capturingMailer) SendVerification(to, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyURLs[to] = url
	return nil
}

func (m *capturingMailer) SendPasswordReset(to, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetURLs[to] = url
	return nil
}

func (m *capturingMailer) verifyToken(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	url, ok := m.verifyURLs[email]
	if !ok {
		t.Fatalf("no verification mail for %s", email)
	}
	return url[len(testVerifyBase):]
}

func (m *capturingMailer) resetToken(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	url, ok := m.resetURLs[email]
	if !ok {
		t.Fatalf("no reset mail for %s", email)
	}
	return url[len(testResetBase):]
}

type apiFixture struct {
	handler http.Handler
	mail    *capturingMailer
	store   *memory.AccountStore
	signer  *security.JWTSigner
}

type fixtureOpts struct {
	authLimit    int
	generalLimit int
}

func newAPIForTest(t *testing.T, opts fixtureOpts) *apiFixture {
	t.Helper()

	if opts.authLimit == 0 {
		opts.authLimit = 1000
	}
	if opts.generalLimit == 0 {
		opts.generalLimit = 1000
	}

	fx := &apiFixture{
		mail:   newCapturingMailer(),
		store:  memory.NewAccountStore(),
		signer: security.NewJWTSigner("test-secret", "test"),
	}

	svc := account.NewService(
		fx.store,
		security.NewBcryptHasher(bcrypt.MinCost),
		fx.signer,
		security.NewTokenGenerator(),
		fx.mail,
		zerolog.New(io.Discard),
		account.Config{
			AccessTokenTTL:       30 * time.Minute,
			ResetTokenTTL:        time.Hour,
			VerifyEmailBaseURL:   testVerifyBase,
			PasswordResetBaseURL: testResetBase,
		},
	)

	h, err := router.New(router.Deps{
		Health:         NewHealthHandler(nil),
		Accounts:       NewAccountHandler(svc),
		QR:             NewQRHandler(),
		AuthMW:         middleware.Auth(fx.signer, response.WriteError),
		AuthLimitMW:    middleware.RateLimit(ratelimit.New(opts.authLimit, time.Minute), "auth", response.WriteError),
		GeneralLimitMW: middleware.RateLimit(ratelimit.New(opts.generalLimit, time.Minute), "general", response.WriteError),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	fx.handler = h

	return fx
}

func (fx *apiFixture) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	fx.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return out
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, rec)
	e, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error payload in %s", rec.Body.String())
	}
	code, _ := e["code"].(string)
	return code
}

// register walks the full registration + verification flow over HTTP.
func (fx *apiFixture) register(t *testing.T, email, password string) {
	t.Helper()

	rec := fx.do(t, http.MethodPost, "/api/v1/users/register", map[string]any{
		"email": email, "full_name": "Test User", "password": password,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}

	token := fx.mail.verifyToken(t, email)
	rec = fx.do(t, http.MethodGet, "/api/v1/users/verify/"+token, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", rec.Code, rec.Body.String())
	}
}

func (fx *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := fx.do(t, http.MethodPost, "/api/v1/users/login", map[string]any{
		"email": email, "password": password,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	token := data["token"].(map[string]any)
	return token["access_token"].(string)
}

const strongPassword = "Sup3rSecret!"
