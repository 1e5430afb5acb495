package services

import (
	"errors"
	"unicode/utf8"
)

var ErrWeakPassword = errors.New("weak password")

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return ErrWeakPassword
	}
	return nil
}
