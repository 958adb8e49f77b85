package security

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/alexcarden/qrgen/internal/domain"
)

// opaqueTokenBytes gives 256 bits of entropy per token.
const opaqueTokenBytes = 32

// TokenGenerator produces URL-safe opaque tokens for email verification and
// password reset. Each call is an independent draw; tokens are never reused
// across purposes.
type TokenGenerator struct{}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

func (g *TokenGenerator) Generate() (string, error) {
	b := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", domain.ErrRandomFailed(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
