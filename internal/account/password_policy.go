package account

import (
	"strings"
	"unicode"

	"github.com/alexcarden/qrgen/internal/domain"
)

const minPasswordLength = 8

// passwordSymbols is the set of characters that satisfy the special
// character rule.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// checkPasswordPolicy validates a candidate password against all five rules
// and reports every unmet one, so a client can show the full list instead
// of fixing violations one at a time.
func checkPasswordPolicy(password string) error {
	var reasons []string

	if len(password) < minPasswordLength {
		reasons = append(reasons, "must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSymbols, r) {
			hasSymbol = true
		}
	}

	if !hasUpper {
		reasons = append(reasons, "must contain an uppercase letter")
	}
	if !hasLower {
		reasons = append(reasons, "must contain a lowercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "must contain a digit")
	}
	if !hasSymbol {
		reasons = append(reasons, "must contain a special character")
	}

	if len(reasons) > 0 {
		return domain.ErrWeakPassword(reasons)
	}
	return nil
}
