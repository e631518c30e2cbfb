// Package error defines domain-specific errors for the obligations engine.
package error

import "errors"

// Billing domain errors.
var (
	// ErrInvalidBillingCycle is returned when a cycle cannot advance a due date.
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

// BillingErrorCode defines error codes for billing errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBillingCycle BillingErrorCode = "BIL-010001"
	ErrCodeNegativePayment     BillingErrorCode = "BIL-010002"
)

// BillingError represents a billing error with code and message.
type BillingError struct {
	Code    BillingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillingError) Unwrap() error {
	return e.Err
}

// NewBillingError creates a new BillingError with the given code and message.
func NewBillingError(code BillingErrorCode, message string, err error) *BillingError {
	return &BillingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
