package dto

import (
	"errors"
	"net/http"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// Error codes the HTTP layer emits on its own, before a request
// reaches the application layer. Domain errors carry their own codes.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used for request binding and validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound is used when a route or resource does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// kindHTTPStatus maps domain error kinds to HTTP status codes.
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation:   http.StatusBadRequest,
	shared.KindUnauthorized: http.StatusUnauthorized,
	shared.KindNotFound:     http.StatusNotFound,
	shared.KindConflict:     http.StatusConflict,
	shared.KindInvalidState: http.StatusUnprocessableEntity,
	shared.KindIntegrity:    http.StatusInternalServerError,
}

// HTTPStatusForKind returns the HTTP status code for a domain error kind.
// Unknown kinds map to 500 Internal Server Error.
func HTTPStatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HTTPStatusFor returns the HTTP status code for an error. Domain errors
// map by kind; anything else is treated as an internal error.
func HTTPStatusFor(err error) int {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return HTTPStatusForKind(de.Kind)
	}
	return http.StatusInternalServerError
}
