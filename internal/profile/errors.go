package profile

import (
	"errors"
	"net/http"
)

// Domain errors for profile operations.
var (
	ErrNotFound       = errors.New("profile record not found")
	ErrInvalidSection = errors.New("invalid profile section")
)

// MapHTTPStatus maps profile domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidSection) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
