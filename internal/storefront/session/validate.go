package session

import (
	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
)

// MinCredentialLength applies to both username and password at registration.
const MinCredentialLength = 6

const (
	UsernameRequiredMessage = "Username is a required field"
	PasswordRequiredMessage = "Password is a required field"
	UsernameTooShortMessage = "Username must be at least 6 characters"
	PasswordTooShortMessage = "Password must be at least 6 characters"
	PasswordMismatchMessage = "Passwords do not match"
)

// ValidateLogin checks the login form before anything is sent.
func ValidateLogin(creds model.Credentials) error {
	if creds.Username == "" {
		return errx.Validation(UsernameRequiredMessage)
	}
	if creds.Password == "" {
		return errx.Validation(PasswordRequiredMessage)
	}
	return nil
}

// ValidateRegistration checks the register form in field order and reports the first
// problem found.
func ValidateRegistration(form model.Registration) error {
	switch {
	case form.Username == "":
		return errx.Validation(UsernameRequiredMessage)
	case len(form.Username) < MinCredentialLength:
		return errx.Validation(UsernameTooShortMessage)
	case form.Password == "":
		return errx.Validation(PasswordRequiredMessage)
	case len(form.Password) < MinCredentialLength:
		return errx.Validation(PasswordTooShortMessage)
	case form.Password != form.ConfirmPassword:
		return errx.Validation(PasswordMismatchMessage)
	}
	return nil
}
