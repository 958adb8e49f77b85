// Package bootstrap wires configuration, storage, security, and transport
// into a runnable HTTP server.
package bootstrap

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexcarden/qrgen/internal/account"
	"github.com/alexcarden/qrgen/internal/config"
	"github.com/alexcarden/qrgen/internal/logger"
	"github.com/alexcarden/qrgen/internal/mailer"
	"github.com/alexcarden/qrgen/internal/ratelimit"
	"github.com/alexcarden/qrgen/internal/security"
	"github.com/alexcarden/qrgen/internal/store/postgres"
	"github.com/alexcarden/qrgen/internal/transport/http/handlers"
	"github.com/alexcarden/qrgen/internal/transport/http/middleware"
	"github.com/alexcarden/qrgen/internal/transport/http/response"
	"github.com/alexcarden/qrgen/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(cfg *config.Config) (*sql.DB, error)

	Migrate func(ctx context.Context, db *sql.DB) error

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db + migrations
	db, err := deps.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	if deps.Migrate != nil {
		if err := deps.Migrate(context.Background(), db); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	accounts := postgres.NewAccountStore(db)

	// 2) mailer: SMTP when configured, log-only otherwise
	var mail account.Mailer
	if m, err := mailer.New(&logger.Logger); err != nil {
		logger.Logger.Warn().Err(err).Msg("smtp not configured; logging emails instead")
		mail = mailer.NewLogMailer(logger.Logger)
	} else {
		mail = m
	}

	// 3) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, "qrgen")
	tokens := security.NewTokenGenerator()

	// 4) service
	svc := account.NewService(accounts, hasher, signer, tokens, mail, logger.Logger, account.Config{
		AccessTokenTTL:       cfg.AccessTokenTTL,
		ResetTokenTTL:        cfg.ResetTokenTTL,
		VerifyEmailBaseURL:   cfg.VerifyEmailBaseURL,
		PasswordResetBaseURL: cfg.PasswordResetBaseURL,
	})

	// 5) handlers + middleware
	accountH := handlers.NewAccountHandler(svc)
	qrH := handlers.NewQRHandler()
	healthH := handlers.NewHealthHandler(db)

	authMW := middleware.Auth(signer, response.WriteError)

	authLimiter := ratelimit.New(cfg.AuthRateLimit, cfg.RateLimitWindow)
	generalLimiter := ratelimit.New(cfg.GeneralRateLimit, cfg.RateLimitWindow)

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health:         healthH,
		Accounts:       accountH,
		QR:             qrH,
		AuthMW:         authMW,
		AuthLimitMW:    middleware.RateLimit(authLimiter, "auth", response.WriteError),
		GeneralLimitMW: middleware.RateLimit(generalLimiter, "general", response.WriteError),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(cfg *config.Config) (*sql.DB, error) {
			return postgres.Open(cfg.DBAddr, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
		},
		Migrate: postgres.Migrate,
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
