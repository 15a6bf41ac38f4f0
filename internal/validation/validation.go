package validation

import (
	"fmt"
	"regexp"
	"strings"

	"examengine/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateOption checks that a submitted answer option is one of A-D
func ValidateOption(option string) error {
	if option == "" {
		return ValidationError{Field: "selected_option", Message: "option is required"}
	}
	if !models.Option(strings.ToUpper(option)).IsValid() {
		return ValidationError{Field: "selected_option", Message: "option must be one of A, B, C, D"}
	}
	return nil
}

// ValidateCategory checks that a question category is recognised
func ValidateCategory(category string) error {
	if !models.ValidCategory(category) {
		return ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", category)}
	}
	return nil
}

// ValidateDifficulty checks that a difficulty level is within 1-5
func ValidateDifficulty(difficulty int) error {
	if difficulty < 1 || difficulty > 5 {
		return ValidationError{Field: "difficulty", Message: "difficulty must be between 1 and 5"}
	}
	return nil
}
