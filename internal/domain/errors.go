package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrWishlistNotFound is returned when a wishlist does not exist, is soft-deleted,
	// or belongs to another user
	ErrWishlistNotFound = errors.New("wishlist not found")

	// ErrItemNotFound is returned when a wishlist item does not exist
	ErrItemNotFound = errors.New("item not found")

	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned on signup with an already registered email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login fails
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is returned when a bearer token is missing or invalid
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// Upstream failure messages
const (
	UpstreamTransportFailure  = "transport failure"
	UpstreamMalformedResponse = "malformed upstream response"
	UpstreamMissingPayload    = "missing extraction payload"
)

// ValidationError reports caller input that cannot be processed (HTTP 400).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UpstreamError reports a failed or unusable response from the scrape service (HTTP 502).
// Message carries the upstream's own error text when it supplied one.
type UpstreamError struct {
	Message string
	Err     error
}

// NewUpstreamError creates an UpstreamError with an optional cause
func NewUpstreamError(message string, cause error) *UpstreamError {
	return &UpstreamError{Message: message, Err: cause}
}

func (e *UpstreamError) Error() string {
	return "scrape failed: " + e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a storage failure (HTTP 500). Op names the repository operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err carries an UpstreamError
func IsUpstream(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

// IsValidation reports whether err carries a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsPersistence reports whether err carries a PersistenceError
func IsPersistence(err error) bool {
	var persistenceErr *PersistenceError
	return errors.As(err, &persistenceErr)
}
