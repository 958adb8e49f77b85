package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alexcarden/qrgen/internal/account"
	"github.com/alexcarden/qrgen/internal/domain"
	"github.com/alexcarden/qrgen/internal/transport/http/dto"
	"github.com/alexcarden/qrgen/internal/transport/http/middleware"
	"github.com/alexcarden/qrgen/internal/transport/http/response"
)

type AccountHandler struct {
	svc *account.Service
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register handles POST /api/v1/users/register. The response never includes
// the verification token; it travels only through email.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	created, err := h.svc.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	log.Info().
		Str("account_id", created.ID).
		Str("email", created.Email).
		Msg("account_registered")

	response.Created(w, dto.NewAccountView(created))
}

// Login handles POST /api/v1/users/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	log.Info().
		Str("account_id", res.Account.ID).
		Msg("account_logged_in")

	response.OK(w, dto.LoginData{
		Account: dto.NewAccountView(res.Account),
		Token: dto.TokenView{
			AccessToken: res.Token.AccessToken,
			TokenType:   res.Token.TokenType,
			ExpiresIn:   res.Token.ExpiresIn,
		},
	})
}

// VerifyEmail handles GET /api/v1/users/verify/{token}.
func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	a, err := h.svc.VerifyEmail(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	log.Info().
		Str("account_id", a.ID).
		Msg("account_verified")

	response.OK(w, dto.MessageData{Message: "email verified"})
}

// PasswordResetRequest handles POST /api/v1/users/password-reset.
// Always 202: the response must not reveal whether the email exists.
func (h *AccountHandler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Accepted(w, dto.MessageData{
		Message: "if the email exists, a reset link has been sent",
	})
}

// PasswordResetConfirm handles POST /api/v1/users/password-reset/confirm.
func (h *AccountHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirmRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ConfirmPasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageData{Message: "password updated"})
}

// Me handles GET /api/v1/users/me.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	a, err := h.svc.Me(r.Context(), email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	// Tokens outlive role changes; the stored role wins, the drift is logged.
	if role, ok := middleware.RoleFromContext(r.Context()); ok && role != string(a.Role) {
		log.Warn().
			Str("account_id", a.ID).
			Str("token_role", role).
			Str("current_role", string(a.Role)).
			Msg("token role out of date")
	}

	response.OK(w, dto.NewAccountView(a))
}
