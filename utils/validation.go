package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// emailRegex accepts the usual mailbox@domain.tld shape. Deliverability
	// is Cognito's problem, this only rejects obvious garbage before any
	// collaborator is called.
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

	// imageExtensionRegex lists the accepted upload extensions.
	imageExtensionRegex = regexp.MustCompile(`(?i)\.(jpe?g|png|gif)$`)
)

// IsValidEmail reports whether the address matches the required pattern.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword enforces the Cognito password policy: at least 8
// characters with one upper case, one lower case and one digit. Written out
// rune by rune because RE2 has no lookahead.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// IsValidName requires at least 2 characters after trimming.
func IsValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// IsAllowedImageFile reports whether the uploaded file name carries an
// accepted image extension.
func IsAllowedImageFile(filename string) bool {
	return imageExtensionRegex.MatchString(filename)
}
