package domain

import "time"

// Account is the user entity. PasswordHash and the one-time tokens never
// leave the service layer; transport DTOs carry a reduced view.
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	IsVerified   bool

	// Present only while email verification is pending.
	VerificationToken string

	// Present only while a password reset is pending. Both fields are set
	// and cleared together.
	PasswordResetToken   string
	PasswordResetExpires *time.Time

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingReset reports whether a reset token is set and not yet expired.
func (a Account) HasPendingReset(now time.Time) bool {
	return a.PasswordResetToken != "" &&
		a.PasswordResetExpires != nil &&
		now.Before(*a.PasswordResetExpires)
}
