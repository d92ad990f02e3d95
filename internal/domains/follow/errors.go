package follow

import (
	"errors"
	"net/http"
)

var (
	// user tried to follow themselves; handlers treat it as a no-op
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSelfFollow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
