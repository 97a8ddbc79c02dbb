package inputs

import (
	"errors"
	"net/http"
)

// Domain errors for input operations.
var (
	ErrNotFound       = errors.New("input not found")
	ErrDuplicate      = errors.New("input already exists")
	ErrFileTooLarge   = errors.New("file exceeds maximum upload size")
	ErrInvalidPayload = errors.New("invalid input payload")
)

// MapHTTPStatus maps input domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidPayload) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
