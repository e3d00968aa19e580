package calibrations

import (
	"errors"
	"net/http"
)

// Domain errors for calibration operations.
var (
	ErrNotFound        = errors.New("calibration not found")
	ErrDuplicate       = errors.New("calibration already exists")
	ErrInvalidRequest  = errors.New("invalid calibration request")
	ErrUnknownScript   = errors.New("unknown calibration script")
	ErrCaptureTooLarge = errors.New("capture exceeds maximum size")
	ErrNoCapture       = errors.New("calibration has no capture archive")
)

// MapHTTPStatus maps calibration domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoCapture) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrCaptureTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrUnknownScript) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
