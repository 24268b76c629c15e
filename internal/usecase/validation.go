package usecase

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wist/backend/internal/domain"
)

const minPasswordLength = 6

var validate = validator.New()

// ValidateProductURL checks that raw is an absolute http(s) URL and returns it trimmed.
func ValidateProductURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &domain.ValidationError{Field: "url", Message: "URL is required"}
	}

	if err := validate.Var(trimmed, "url"); err != nil {
		return "", &domain.ValidationError{Field: "url", Message: "Invalid URL format"}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", &domain.ValidationError{Field: "url", Message: "Invalid URL format"}
	}
	if scheme := strings.ToLower(parsed.Scheme); scheme != "http" && scheme != "https" {
		return "", &domain.ValidationError{Field: "url", Message: "URL must use http or https"}
	}

	return trimmed, nil
}

func validateEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", &domain.ValidationError{Field: "email", Message: "email is required"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", &domain.ValidationError{Field: "email", Message: "invalid email address"}
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &domain.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

func validateWishlistName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > 255 {
		return "", &domain.ValidationError{Field: "name", Message: "name must be at most 255 characters"}
	}
	return name, nil
}
