package group

import (
	"errors"
	"net/http"
)

var (
	// Validation Errors
	ErrInvalidTitle = errors.New("group title is invalid")
	ErrInvalidSlug  = errors.New("group slug is invalid")

	// Business Rule Errors
	ErrGroupNotFound = errors.New("group not found")
	ErrDuplicateSlug = errors.New("group with this slug already exists")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidSlug):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
