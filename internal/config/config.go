package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// App
	Env      string // dev / staging / prod
	HTTPAddr string

	// Auth / security
	JWTSecret      string
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	BcryptCost     int

	// Infrastructure
	DBAddr         string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBMaxIdleTime  string

	// Links embedded in verification / reset emails. The token is appended,
	// so they must end with `token=` (or a path separator for verify links).
	VerifyEmailBaseURL   string
	PasswordResetBaseURL string

	// Rate limiting
	RateLimitWindow  time.Duration
	AuthRateLimit    int // sensitive endpoints, per client IP per window
	GeneralRateLimit int // everything else

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// optional with defaults
	ttl, err := getDuration("ACCESS_TOKEN_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = ttl

	// The reset validity window is fixed at 1 hour by the product, but kept
	// configurable for tests and staging.
	rtl, err := getDuration("PASSWORD_RESET_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.ResetTokenTTL = rtl

	cost, err := getInt("BCRYPT_COST", 0) // 0 lets the hasher pick the default
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 30)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 30)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleTime = getEnv("DB_MAX_IDLE_TIME", "15m")

	cfg.VerifyEmailBaseURL = getEnv("VERIFY_EMAIL_BASE_URL", "http://localhost:8080/api/v1/users/verify/")
	cfg.PasswordResetBaseURL = getEnv("PASSWORD_RESET_BASE_URL", "http://localhost:8080/reset-password?token=")

	win, err := getDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = win

	cfg.AuthRateLimit, err = getInt("AUTH_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	cfg.GeneralRateLimit, err = getInt("GENERAL_RATE_LIMIT", 60)
	if err != nil {
		return nil, err
	}

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
