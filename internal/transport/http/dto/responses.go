package dto

import (
	"time"

	"github.com/alexcarden/qrgen/internal/domain"
)

// AccountView is the public shape of an account. It deliberately omits the
// password hash and both one-time tokens.
type AccountView struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewAccountView(a domain.Account) AccountView {
	return AccountView{
		ID:         a.ID,
		Email:      a.Email,
		FullName:   a.FullName,
		Role:       string(a.Role),
		IsVerified: a.IsVerified,
		LastLogin:  a.LastLogin,
		CreatedAt:  a.CreatedAt,
	}
}

type TokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type LoginData struct {
	Account AccountView `json:"account"`
	Token   TokenView   `json:"token"`
}

type MessageData struct {
	Message string `json:"message"`
}

// QRCodeData carries the rendered image as a base64-encoded PNG.
type QRCodeData struct {
	QRCode string `json:"qr_code"`
	Format string `json:"format"`
}
