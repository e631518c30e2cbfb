// Package error defines domain-specific errors for the obligations engine.
package error

import "errors"

// Rate domain errors.
var (
	// ErrMissingRate is returned when a currency is absent from the active snapshot.
	ErrMissingRate = errors.New("missing exchange rate")

	// ErrStaleRateFallback marks a result computed from an expired snapshot.
	// It is reported as a warning next to the result, never as a hard failure.
	ErrStaleRateFallback = errors.New("using stale exchange rates")

	// ErrNetworkFailure is returned when a fetch failed and no snapshot is cached for the base currency.
	ErrNetworkFailure = errors.New("exchange rates unavailable")

	// ErrInvalidCurrency is returned when a currency code is not supported.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidRatePayload is returned when the rate source responds with unusable data.
	ErrInvalidRatePayload = errors.New("invalid rate payload")
)

// RateErrorCode defines error codes for rate errors.
// Format: RTE-XXYYYY where XX is category and YYYY is specific error.
type RateErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingRate     RateErrorCode = "RTE-010001"
	ErrCodeInvalidCurrency RateErrorCode = "RTE-010002"
	ErrCodeInvalidAmount   RateErrorCode = "RTE-010003"

	// Upstream errors (02XXXX)
	ErrCodeNetworkFailure     RateErrorCode = "RTE-020001"
	ErrCodeStaleRateFallback  RateErrorCode = "RTE-020002"
	ErrCodeInvalidRatePayload RateErrorCode = "RTE-020003"

	// Throttling errors (03XXXX)
	ErrCodeRefreshThrottled RateErrorCode = "RTE-030001"

	// Internal errors (99XXXX)
	ErrCodeRateInternalError RateErrorCode = "RTE-990001"
)

// RateError represents a rate error with code and message.
type RateError struct {
	Code    RateErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RateError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RateError) Unwrap() error {
	return e.Err
}

// NewRateError creates a new RateError with the given code and message.
func NewRateError(code RateErrorCode, message string, err error) *RateError {
	return &RateError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
