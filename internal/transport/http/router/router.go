package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
	Ready(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	VerifyEmail(w http.ResponseWriter, r *http.Request)
	PasswordResetRequest(w http.ResponseWriter, r *http.Request)
	PasswordResetConfirm(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type QRHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Accounts AccountHandler
	QR       QRHandler

	AuthMW func(http.Handler) http.Handler

	// Per-class rate limits. AuthLimitMW guards the credential-sensitive
	// endpoints; GeneralLimitMW covers the rest of the API surface.
	AuthLimitMW    func(http.Handler) http.Handler
	GeneralLimitMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Accounts == nil {
		return nil, fmt.Errorf("nil Accounts handler")
	}
	if deps.QR == nil {
		return nil, fmt.Errorf("nil QR handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AuthLimitMW == nil {
		return nil, fmt.Errorf("nil auth rate limit middleware")
	}
	if deps.GeneralLimitMW == nil {
		return nil, fmt.Errorf("nil general rate limit middleware")
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	// Health stays outside the rate limits so probes never get throttled.
	r.Get("/health", deps.Health.Health)
	r.Get("/ready", deps.Health.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Credential-sensitive endpoints get the tight limit.
			r.With(deps.AuthLimitMW).Post("/register", deps.Accounts.Register)
			r.With(deps.AuthLimitMW).Post("/login", deps.Accounts.Login)
			r.With(deps.AuthLimitMW).Post("/password-reset", deps.Accounts.PasswordResetRequest)
			r.With(deps.AuthLimitMW).Post("/password-reset/confirm", deps.Accounts.PasswordResetConfirm)

			r.With(deps.GeneralLimitMW).Get("/verify/{token}", deps.Accounts.VerifyEmail)
			r.With(deps.GeneralLimitMW, deps.AuthMW).Get("/me", deps.Accounts.Me)
		})

		r.With(deps.GeneralLimitMW).Post("/qr/generate", deps.QR.Generate)
	})

	return r, nil
}
