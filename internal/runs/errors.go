package runs

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("run not found")
	ErrInvalidNamespace = errors.New("namespace is required")
	ErrRunFailed        = errors.New("run failed")
)

// MapHTTPStatus translates run errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidNamespace) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
