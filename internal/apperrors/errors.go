package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Cross-tenant lookups also report ErrNotFound to avoid leaking existence.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the actor lacks the required team role for the action.
var ErrForbidden = errors.New("forbidden")

// ErrLockedPeriod indicates a balance-affecting mutation targeted a document
// dated inside a filed GST period.
var ErrLockedPeriod = errors.New("document falls within a filed GST period")

// ErrLockedDocument indicates a mutation targeted a document that is frozen
// for reasons other than a filed period (e.g. editing totals after issue).
var ErrLockedDocument = errors.New("document is locked")

// ErrOverAllocation indicates an allocation or payment would exceed the
// advance's unallocated remainder or the target document's amount due.
var ErrOverAllocation = errors.New("amount exceeds available balance")

// ErrInvalidTransition indicates an illegal document status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrConflict indicates the operation lost a serialization conflict and may be retried.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and message.
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

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
