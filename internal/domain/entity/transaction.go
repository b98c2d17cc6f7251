// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusDraft      TransactionStatus = "draft"
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusApproved   TransactionStatus = "approved"
	TransactionStatusReconciled TransactionStatus = "reconciled"
	TransactionStatusOverdue    TransactionStatus = "overdue"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
)

// ValidTransactionStatus reports whether s is a legal transaction status.
func ValidTransactionStatus(s TransactionStatus) bool {
	switch s {
	case TransactionStatusDraft, TransactionStatusPending, TransactionStatusApproved,
		TransactionStatusReconciled, TransactionStatusOverdue, TransactionStatusCancelled:
		return true
	}
	return false
}

// Transaction represents a financial transaction in the ledger.
// Amount is signed: positive for inflows, negative for outflows. The sign
// convention is fixed at creation and never flipped by status changes.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string // ISO 4217 code, e.g. "USD"
	Category    string
	Folder      string
	Status      TransactionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity with a fresh identity.
// An empty status defaults to pending.
func NewTransaction(
	date time.Time,
	description string,
	amount decimal.Decimal,
	currency string,
	category string,
	folder string,
	status TransactionStatus,
) *Transaction {
	if status == "" {
		status = TransactionStatusPending
	}
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		Category:    category,
		Folder:      folder,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsInflow reports whether the transaction adds money to the ledger.
func (t *Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// CountsTowardTotals reports whether the transaction participates in
// revenue/expense aggregation. Cancelled transactions never do.
func (t *Transaction) CountsTowardTotals() bool {
	return t.Status != TransactionStatusCancelled
}
