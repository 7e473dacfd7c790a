package auth

import (
	"currency_wizard/internal/domain" // Importing domain errors
	"regexp"                          // Email pattern
	"strings"                         // Symbol lookup
	"unicode/utf8"                    // Character counting
)

const (
	minPasswordLength = 8                      // Minimum length in characters
	passwordSymbols   = `!@#$%^&*(),.?":{}|<>` // Accepted special characters
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type passwordComplexity struct {
	hasUpper  bool
	hasLower  bool
	hasDigit  bool
	hasSymbol bool
}

// ValidatePassword enforces the strength policy: at least 8 characters with an
// uppercase letter, a lowercase letter, a digit and a symbol from passwordSymbols.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength { // Count characters, not bytes
		return domain.ErrWeakPassword
	}
	c := passwordComplexityFlags(password)
	if !c.hasUpper || !c.hasLower || !c.hasDigit || !c.hasSymbol {
		return domain.ErrWeakPassword
	}
	return nil
}

// ValidateEmail checks email against the accepted address pattern
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	return nil
}

func passwordComplexityFlags(password string) passwordComplexity {
	var c passwordComplexity
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.hasUpper = true
		case r >= 'a' && r <= 'z':
			c.hasLower = true
		case r >= '0' && r <= '9':
			c.hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			c.hasSymbol = true
		}
	}
	return c
}
