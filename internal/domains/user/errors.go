package user

import (
	"errors"
	"net/http"
)

// Repository-level errors
var (
	// Not Found
	ErrUserNotFound = errors.New("user not found")

	// Conflict
	ErrDuplicateUsername = errors.New("username already exists")
)

// Service-level (Business logic) errors
var (
	// Authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
