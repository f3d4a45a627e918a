package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the user is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not permit the operation.
var ErrConflict = errors.New("conflict")

// ErrStore indicates the remote store failed or timed out. The outcome of the
// attempted write is unknown; callers must re-query before re-issuing a
// mutating call.
var ErrStore = errors.New("store error: outcome unknown")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewStoreError wraps a store/network failure so it matches ErrStore.
func NewStoreError(message string, cause error) *AppError {
	return &AppError{Code: 500, Message: message, Err: fmt.Errorf("%w: %v", ErrStore, cause)}
}
