package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z.]+$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

const passwordSpecials = `!@#$%^&*()-_=+[]{}|;:'",.<>?/`

// IsValidPassword enforces the registration policy: at least 8 characters
// with an uppercase letter, a digit and a special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		}
	}
	return hasUpper && hasDigit && hasSpecial
}
