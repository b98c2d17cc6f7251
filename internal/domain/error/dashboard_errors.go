// Package error defines domain-specific errors for the accounting ledger.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidPeriod is returned when the aggregation period cannot be parsed.
	ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM or a start/end date pair")

	// ErrInvalidDateRange is returned when the period end is before its start.
	ErrInvalidDateRange = errors.New("period end must not be before period start")

	// ErrInvalidReportingCurrency is returned when the reporting currency code is malformed.
	ErrInvalidReportingCurrency = errors.New("reporting currency must be a three-letter ISO code")

	// ErrInvalidDateFormat is returned when a period bound has an invalid format.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod            DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidDateRange         DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidReportingCurrency DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidDateFormat        DashboardErrorCode = "DSH-010004"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
