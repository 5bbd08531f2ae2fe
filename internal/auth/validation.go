package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrValidation marks locally rejected input that never reached the network.
var ErrValidation = errors.New("validation error")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// ParseEmail validates and normalizes an email address.
func ParseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return "", fmt.Errorf("%w, invalid email address", ErrValidation)
	}

	return email, nil
}

// ParseName validates and normalizes a display name.
func ParseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w, name must not be empty", ErrValidation)
	}

	if strings.ContainsAny(name, "\t\n") {
		return "", fmt.Errorf("%w, name must be a single line", ErrValidation)
	}

	return name, nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w, password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	return nil
}
