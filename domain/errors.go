package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeUnauthenticated      ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeValidation           ErrorCode = "VALIDATION"
	ErrCodeJobClosed            ErrorCode = "JOB_CLOSED"
	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeConflict             ErrorCode = "CONFLICT"
	ErrCodeStorageUnavailable   ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeInternal             ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is a domain error carrying the same code and message,
// so a sentinel still matches after being wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a VALIDATION error for a single field.
func Validation(field, reason string) *Error {
	return NewError(ErrCodeValidation, fmt.Sprintf("%s: %s", field, reason))
}

// Common domain errors.
var (
	ErrUnauthenticated      = NewError(ErrCodeUnauthenticated, "authentication required")
	ErrInvalidCredentials   = NewError(ErrCodeUnauthenticated, "invalid credentials")
	ErrForbidden            = NewError(ErrCodeForbidden, "forbidden")
	ErrNotJobOwner          = NewError(ErrCodeForbidden, "you do not have permission to manage this job")
	ErrNotApplicationOwner  = NewError(ErrCodeForbidden, "you do not have permission to modify this application")
	ErrUserNotFound         = NewError(ErrCodeNotFound, "user not found")
	ErrJobNotFound          = NewError(ErrCodeNotFound, "job not found")
	ErrApplicationNotFound  = NewError(ErrCodeNotFound, "application not found")
	ErrSessionNotFound      = NewError(ErrCodeNotFound, "session not found")
	ErrJobClosed            = NewError(ErrCodeJobClosed, "this job is no longer accepting applications")
	ErrDuplicateApplication = NewError(ErrCodeDuplicateApplication, "you have already applied for this job")
	ErrEmailTaken           = NewError(ErrCodeConflict, "email already registered")
	ErrInvalidPayload       = NewError(ErrCodeValidation, "invalid payload")
	ErrStorageUnavailable   = NewError(ErrCodeStorageUnavailable, "storage unavailable")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in err's chain, or INTERNAL.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}

// StorageError classifies an error returned by a repository. Domain errors pass
// through untouched; anything else becomes STORAGE_UNAVAILABLE with the cause attached.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return err
	}
	return WrapError(ErrCodeStorageUnavailable, ErrStorageUnavailable.Message, err)
}
