// Package error defines domain-specific errors for the accounting ledger.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the ledger.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionStatus is returned when the transaction status is not a legal status.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInvalidTransactionCurrency is returned when the currency code is malformed.
	ErrInvalidTransactionCurrency = errors.New("invalid currency code")

	// ErrMissingTransactionDescription is returned when the description is empty.
	ErrMissingTransactionDescription = errors.New("description is required")

	// ErrMissingTransactionDate is returned when the transaction date is unset.
	ErrMissingTransactionDate = errors.New("date is required")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionStatus   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionCurrency TransactionErrorCode = "TXN-010002"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong         TransactionErrorCode = "TXN-010004"

	// Not-found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
