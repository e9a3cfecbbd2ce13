package services

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "task-manager.com/task-manager/internal/errors"
)

const (
	minNameLength     = 2
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || strings.ToLower(addr.Address) != email {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return apperrors.ErrInvalidName
	}
	return nil
}

// validatePassword requires at least one lower-case letter, one upper-case
// letter and one digit.
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return apperrors.ErrWeakPassword
	}

	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return apperrors.ErrWeakPassword
	}
	return nil
}
