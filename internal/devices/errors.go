package devices

import (
	"errors"
	"net/http"
)

// Domain errors for device operations.
var (
	ErrNotFound       = errors.New("device not found")
	ErrDuplicate      = errors.New("device already registered")
	ErrInvalidRequest = errors.New("invalid device request")
)

// MapHTTPStatus maps device domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
