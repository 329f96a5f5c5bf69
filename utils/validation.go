package utils

import (
	"fmt"
	"regexp"
)

// Email and phone regex patterns
var (
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	PhoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone checks if phone is in E.164 format
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !PhoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone format (use E.164 format, e.g., +628123456789)")
	}
	return nil
}
