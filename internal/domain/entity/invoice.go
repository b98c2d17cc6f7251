// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidInvoiceStatus reports whether s is a legal invoice status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice represents a customer invoice in the ledger.
// Number is a human-readable identifier, unique across the ledger and
// distinct from ID. DueDate is never before Date.
type Invoice struct {
	ID           uuid.UUID
	Number       string
	CustomerName string
	Date         time.Time // issue date
	DueDate      time.Time
	TotalAmount  decimal.Decimal // non-negative
	Currency     string
	Status       InvoiceStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewInvoice creates a new Invoice entity with a fresh identity.
// An empty status defaults to draft.
func NewInvoice(
	number string,
	customerName string,
	date time.Time,
	dueDate time.Time,
	totalAmount decimal.Decimal,
	currency string,
	status InvoiceStatus,
) *Invoice {
	if status == "" {
		status = InvoiceStatusDraft
	}
	now := time.Now().UTC()

	return &Invoice{
		ID:           uuid.New(),
		Number:       number,
		CustomerName: customerName,
		Date:         date,
		DueDate:      dueDate,
		TotalAmount:  totalAmount,
		Currency:     currency,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// EffectiveStatus returns the invoice status after read-time derivation.
// A pending invoice whose due date has passed is reported as overdue
// without any persisted mutation; paid and cancelled invoices are never
// derived overdue.
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceStatusPending && now.After(i.DueDate) {
		return InvoiceStatusOverdue
	}
	return i.Status
}

// IsOutstanding reports whether the invoice counts toward the
// outstanding-receivables total at the given time.
func (i *Invoice) IsOutstanding(now time.Time) bool {
	effective := i.EffectiveStatus(now)
	return effective == InvoiceStatusPending || effective == InvoiceStatusOverdue
}
