// Package error defines domain-specific errors for the accounting ledger.
package error

import "errors"

// Currency conversion errors.
var (
	// ErrRateUnavailable is returned when no exchange rate can be resolved
	// for a currency pair. A rate lookup timeout surfaces as this error too.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrInvalidRate is returned when the rate source yields a rate that is
	// not a positive number.
	ErrInvalidRate = errors.New("exchange rate must be a positive number")
)

// RateErrorCode defines error codes for currency conversion errors.
// Format: FX-XXYYYY where XX is category and YYYY is specific error.
type RateErrorCode string

const (
	ErrCodeRateUnavailable RateErrorCode = "FX-010001"
	ErrCodeInvalidRate     RateErrorCode = "FX-010002"
)

// RateError represents a currency conversion error for a specific pair.
type RateError struct {
	Code RateErrorCode
	From string
	To   string
	Err  error
}

// Error implements the error interface.
func (e *RateError) Error() string {
	msg := "conversion " + e.From + " -> " + e.To
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RateError) Unwrap() error {
	return e.Err
}

// NewRateError creates a new RateError for the given currency pair.
func NewRateError(code RateErrorCode, from, to string, err error) *RateError {
	return &RateError{
		Code: code,
		From: from,
		To:   to,
		Err:  err,
	}
}
