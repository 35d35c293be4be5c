// Package validation holds input validators for request and account fields.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"proctrack/internal/models"
)

const (
	passwordMinLength = 12
	passwordMaxLength = 128
	itemMaxLength     = 500
	nameMaxLength     = 100
)

// ValidateEmail checks RFC 5322 shape and overall length.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must be at most 254 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if strings.HasSuffix(email, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces length plus upper, lower, digit and symbol classes.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("password must be at least %d characters", passwordMinLength)
	}
	if len(password) > passwordMaxLength {
		return fmt.Errorf("password must be at most %d characters", passwordMaxLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain upper and lower case letters, a digit, and a symbol")
	}
	return nil
}

// ValidatePersonName checks a human name part: non-empty, bounded,
// letters plus common separators.
func ValidatePersonName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > nameMaxLength {
		return fmt.Errorf("name must be at most %d characters", nameMaxLength)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' && r != '.' {
			return fmt.Errorf("name contains invalid characters")
		}
	}
	return nil
}

// ValidateItem checks the requested item description.
func ValidateItem(item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return fmt.Errorf("item is required")
	}
	if len(item) > itemMaxLength {
		return fmt.Errorf("item must be at most %d characters", itemMaxLength)
	}
	return nil
}

// ValidatePriority checks that the priority is one of the known levels.
func ValidatePriority(p models.Priority) error {
	if !p.Valid() {
		return fmt.Errorf("priority must be one of high, normal, low")
	}
	return nil
}

// ValidateRole checks that the role is one of the known account roles.
func ValidateRole(r models.Role) error {
	if !r.Valid() {
		return fmt.Errorf("unknown role %q", string(r))
	}
	return nil
}
