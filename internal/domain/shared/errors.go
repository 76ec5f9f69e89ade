package shared

import "errors"

// ErrorKind classifies domain errors by how the caller should react.
type ErrorKind string

const (
	// KindValidation marks user-correctable input errors. Not retryable.
	KindValidation ErrorKind = "validation"
	// KindIntegrity marks data-integrity violations that should never occur
	// under correct operation (e.g. negative remaining balance). Hard failure.
	KindIntegrity ErrorKind = "integrity"
	// KindConflict marks optimistic-concurrency losers. Retryable after re-read.
	KindConflict ErrorKind = "conflict"
	// KindNotFound marks references to missing records. Terminal.
	KindNotFound ErrorKind = "not_found"
	// KindInvalidState marks operations not allowed in the current state.
	KindInvalidState ErrorKind = "invalid_state"
	// KindUnauthorized marks authentication/authorization failures.
	KindUnauthorized ErrorKind = "unauthorized"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Retryable reports whether the caller may re-fetch and retry the operation.
func (e *DomainError) Retryable() bool {
	return e.Kind == KindConflict
}

// NewDomainError creates a new domain error with an explicit kind
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// NewValidationError creates a user-correctable validation error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// NewIntegrityError creates a data-integrity error
func NewIntegrityError(code, message string) *DomainError {
	return NewDomainError(KindIntegrity, code, message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError(KindValidation, "ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError(KindValidation, "INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(KindConflict, "CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(KindUnauthorized, "UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError(KindInvalidState, "INVALID_STATE", "Operation not allowed in current state")
)

// KindOf returns the ErrorKind of err, or an empty kind for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsConflict reports whether err is a retryable concurrency conflict.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
