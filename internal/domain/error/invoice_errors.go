// Package error defines domain-specific errors for the accounting ledger.
package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found in the ledger.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidInvoiceStatus is returned when the invoice status is not a legal status.
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")

	// ErrDueDateBeforeIssueDate is returned when due_date precedes the issue date.
	ErrDueDateBeforeIssueDate = errors.New("due date must not be before issue date")

	// ErrNegativeInvoiceTotal is returned when total_amount is negative.
	ErrNegativeInvoiceTotal = errors.New("total amount must not be negative")

	// ErrDuplicateInvoiceNumber is returned when the invoice number is already in use.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already in use")

	// ErrMissingInvoiceNumber is returned when the invoice number is empty.
	ErrMissingInvoiceNumber = errors.New("invoice number is required")

	// ErrMissingCustomerName is returned when the customer name is empty.
	ErrMissingCustomerName = errors.New("customer name is required")

	// ErrInvalidInvoiceCurrency is returned when the currency code is malformed.
	ErrInvalidInvoiceCurrency = errors.New("invalid currency code")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidInvoiceStatus   InvoiceErrorCode = "INV-010001"
	ErrCodeDueDateBeforeIssueDate InvoiceErrorCode = "INV-010002"
	ErrCodeNegativeInvoiceTotal   InvoiceErrorCode = "INV-010003"
	ErrCodeDuplicateInvoiceNumber InvoiceErrorCode = "INV-010004"
	ErrCodeMissingInvoiceFields   InvoiceErrorCode = "INV-010005"
	ErrCodeInvalidInvoiceCurrency InvoiceErrorCode = "INV-010006"

	// Not-found errors (02XXXX)
	ErrCodeInvoiceNotFound InvoiceErrorCode = "INV-020001"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
