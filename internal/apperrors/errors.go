package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced master-data entity could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that caller-supplied data violates a business rule.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a concurrent-write or serialization failure surfaced
// by the transactional engine. The caller may retry the whole operation.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an invariant violation inside the core itself.
var ErrInternal = errors.New("internal error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the supplied credentials are invalid or inactive.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps a lower-level error with a status code and context message,
// used mainly at the repository boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
