package taxonomy

import (
	"errors"
	"net/http"
)

// Domain errors for taxonomy operations.
var (
	ErrNotFound      = errors.New("taxonomy entry not found")
	ErrDuplicate     = errors.New("taxonomy entry already exists")
	ErrValueMismatch = errors.New("value does not match taxonomy entry")
	ErrEmptyValue    = errors.New("placeholder entry requires a value")
)

// MapHTTPStatus maps taxonomy domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValueMismatch) || errors.Is(err, ErrEmptyValue) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
