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

// ErrConflict indicates that the request is valid but conflicts with the current state
// (balances, desk claims, reconciliation status). The caller may adjust and retry.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates that the caller is not a party allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConvergence indicates that denomination fitting exceeded its iteration cap.
var ErrConvergence = errors.New("unable to converge")

// ErrUpstream indicates that the external rate source failed or does not support a pair.
var ErrUpstream = errors.New("upstream rate lookup failed")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// Validation failures.
var (
	ErrIdenticalCurrencies    = fmt.Errorf("%w: source and target currencies are identical", ErrValidation)
	ErrCrossConversion        = fmt.Errorf("%w: cross conversion between two non-base currencies is not supported", ErrValidation)
	ErrNoDenominations        = fmt.Errorf("%w: no denominations configured", ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrRoundingChoiceRequired = fmt.Errorf("%w: amount is not payable, choose a rounding direction", ErrValidation)
)

// Conflict failures.
var (
	ErrInsufficientBalance      = fmt.Errorf("%w: insufficient balance", ErrConflict)
	ErrDeskClaimed              = fmt.Errorf("%w: desk already claimed as opening desk", ErrConflict)
	ErrDestinationNotReconciled = fmt.Errorf("%w: destination desk has no open reconciled session", ErrConflict)
	ErrRepeatedLine             = fmt.Errorf("%w: repeated currency pair in operation", ErrConflict)
	ErrNotReconciled            = fmt.Errorf("%w: opening session balance check not completed", ErrConflict)
	ErrInvalidState             = fmt.Errorf("%w: invalid state transition", ErrConflict)
)

// AppError carries an HTTP-ish status code for infrastructure failures raised by adapters.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports server-side AppErrors as ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
