// Package errors provides error code definitions for the queue subsystem.
package errors

import (
	stderrors "errors"
	"fmt"

	sqlite3 "modernc.org/sqlite"
)

// ErrorCode represents a unique error code surfaced by the queue API.
type ErrorCode string

const (
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrInvalid  ErrorCode = "INVALID_INPUT"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Storage errors
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"
	ErrDatabase       ErrorCode = "DATABASE_ERROR"
	ErrMigration      ErrorCode = "MIGRATION_FAILED"
	ErrConstraint     ErrorCode = "CONSTRAINT_VIOLATION"
	ErrBusy           ErrorCode = "DATABASE_BUSY"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error carries a specific code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// SQLite primary result codes. Extended codes keep the base code in the
// low byte.
const (
	sqliteBusyBase       = 5
	sqliteLockedBase     = 6
	sqliteConstraintBase = 19
)

func sqliteBaseCode(err error) (int, bool) {
	var sqliteErr *sqlite3.Error
	if !stderrors.As(err, &sqliteErr) {
		return 0, false
	}
	return sqliteErr.Code() & 0xff, true
}

// IsConstraint reports whether err is a SQLite constraint violation
// (unique, check, not-null).
func IsConstraint(err error) bool {
	code, ok := sqliteBaseCode(err)
	return ok && code == sqliteConstraintBase
}

// IsBusy reports whether err is a SQLite busy/locked error, i.e. the
// bounded lock wait expired. Busy errors are retryable by the caller.
func IsBusy(err error) bool {
	code, ok := sqliteBaseCode(err)
	return ok && (code == sqliteBusyBase || code == sqliteLockedBase)
}

// Classify maps a storage-layer error to a coded AppError. The message
// names the failed operation.
func Classify(message string, err error) *AppError {
	switch {
	case IsBusy(err):
		return Wrap(ErrBusy, message, err)
	case IsConstraint(err):
		return Wrap(ErrConstraint, message, err)
	default:
		return Wrap(ErrDatabase, message, err)
	}
}
