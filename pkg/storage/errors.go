package storage

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates no archived capture exists under the key.
	ErrNotFound = errors.New("capture object not found")
	// ErrEmptyKey indicates an empty capture key was provided.
	ErrEmptyKey = errors.New("capture key must not be empty")
	// ErrInvalidKey indicates the capture key contains a path traversal segment.
	ErrInvalidKey = errors.New("capture key contains invalid path segment")
)

// MapHTTPStatus maps capture archive errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyKey) || errors.Is(err, ErrInvalidKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
