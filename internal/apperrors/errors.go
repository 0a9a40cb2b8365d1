package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the caller lacks the privilege for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current state of a
// resource. Used for integrity violations and lock contention.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal failure whose cause must not
// be exposed to callers.
var ErrInternal = errors.New("internal error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Payment reconciliation failures. ErrAlreadyPaid and ErrOverpay are
// business-rule rejections that leave no state behind. ErrSaleBusy is lock
// contention and retryable. ErrNegativeOutstanding is an integrity violation
// that should be unreachable; it must abort the transaction, never be patched.
var (
	ErrAlreadyPaid         = fmt.Errorf("%w: sale is already fully paid", ErrValidation)
	ErrOverpay             = fmt.Errorf("%w: payment exceeds outstanding amount", ErrValidation)
	ErrSaleBusy            = fmt.Errorf("%w: sale is locked by a concurrent payment", ErrConflict)
	ErrNegativeOutstanding = fmt.Errorf("%w: sale outstanding amount went negative", ErrConflict)
)

// UnbalancedEntryError reports why a proposed journal entry failed the
// double-entry check. Debits, Credits and Difference must be surfaced
// verbatim so operators can diagnose the posting without re-deriving sums.
type UnbalancedEntryError struct {
	Debits     decimal.Decimal
	Credits    decimal.Decimal
	Difference decimal.Decimal
	Reason     string
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("%s: debits=%s credits=%s difference=%s",
		e.Reason, e.Debits.String(), e.Credits.String(), e.Difference.String())
}

// Is makes the error match ErrValidation via errors.Is.
func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrValidation
}

// AppError wraps lower-level failures (typically storage) with a code and a
// stable message so raw driver errors never leak to callers.
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

// Is maps AppError codes onto the sentinel taxonomy.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == 404
	case ErrInternal:
		return e.Code == 500
	}
	return false
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}
