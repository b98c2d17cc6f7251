// Package error defines domain-specific errors for the accounting ledger.
package error

// APIErrorCode defines error codes for transport-level failures.
// Format: API-XXYYYY where XX is category and YYYY is specific error.
type APIErrorCode string

const (
	// Throttling errors (02XXXX)
	ErrCodeRateLimited APIErrorCode = "API-020001"
)
