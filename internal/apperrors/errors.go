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

// ErrConflict indicates the resource is in a state that forbids the requested change.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnknownCurrency indicates a conversion was requested for a currency
// code absent from the rate table.
var ErrUnknownCurrency = errors.New("unknown currency code")

// ErrDebtExceeded indicates a debt payment would over-pay the recorded debt.
var ErrDebtExceeded = errors.New("payment exceeds recorded debt")

// ErrClientRequired indicates a debt-flagged sale has no client reference.
var ErrClientRequired = errors.New("client reference required for debt sale")

// ErrInvalidEntryType indicates an entry carries a type outside its allowed set.
var ErrInvalidEntryType = errors.New("invalid entry type")

// ErrForbidden indicates the user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
