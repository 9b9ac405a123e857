package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")

	ErrConflict = errors.New("resource conflict")
)

// Lending rule violations. Each one wraps the generic kind it belongs to so
// callers can match either the specific rule or the broad category.
var (
	ErrCopyUnavailable = fmt.Errorf("%w: book copy is not available", ErrConflict)

	ErrCustomerNotFound = fmt.Errorf("%w: customer not found", ErrNotFound)

	ErrOutstandingFine = fmt.Errorf("%w: customer has an outstanding fine", ErrConflict)

	ErrBorrowingNotFound = fmt.Errorf("%w: open borrowing not found", ErrNotFound)

	ErrInvalidTransition = fmt.Errorf("%w: invalid book copy status transition", ErrConflict)
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

// IsConflict reports whether err is one of the lending rule violations that
// map to a conflict rather than a missing resource.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
