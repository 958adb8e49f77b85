package dto

// RegisterRequest creates a new account. Password composition is checked by
// the account service, which reports every unmet rule; the DTO only requires
// presence.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	return validateRequest(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validateRequest(r)
}

// PasswordResetRequest kicks off the reset flow. The handler always answers
// 202 regardless of whether the email exists.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *PasswordResetRequest) Validate() error {
	return validateRequest(r)
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

func (r *PasswordResetConfirmRequest) Validate() error {
	return validateRequest(r)
}

// QRCodeRequest renders a QR code. Size is the pixel width of one module;
// zero means the default. Colors accept #hex or a small set of names and
// are range-checked by the qr package itself.
type QRCodeRequest struct {
	Data      string `json:"data" validate:"required"`
	Size      int    `json:"size" validate:"omitempty,min=1,max=40"`
	FillColor string `json:"fill_color"`
	BackColor string `json:"back_color"`
}

func (r *QRCodeRequest) Validate() error {
	return validateRequest(r)
}
