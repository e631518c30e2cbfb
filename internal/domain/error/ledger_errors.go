// Package error defines domain-specific errors for the obligations engine.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrNegativeQuantity is returned when an operation would record or leave a tracked quantity below zero.
	ErrNegativeQuantity = errors.New("negative quantity")

	// ErrPaymentNotFound is returned when a payment does not exist in the account history.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrReadingNotFound is returned when a meter reading does not exist in the account history.
	ErrReadingNotFound = errors.New("meter reading not found")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeAmount  LedgerErrorCode = "LDG-010001"
	ErrCodeNegativeReading LedgerErrorCode = "LDG-010002"
	ErrCodeMissingFields   LedgerErrorCode = "LDG-010003"

	// Lookup errors (02XXXX)
	ErrCodePaymentNotFound LedgerErrorCode = "LDG-020001"
	ErrCodeReadingNotFound LedgerErrorCode = "LDG-020002"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
