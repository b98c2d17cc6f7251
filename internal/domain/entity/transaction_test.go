package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransaction(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults empty status to pending", func(t *testing.T) {
		txn := NewTransaction(date, "Consulting fee", decimal.NewFromInt(1000), "USD", "sales", "clients", "")
		if txn.Status != TransactionStatusPending {
			t.Errorf("expected default status pending, got %s", txn.Status)
		}
	})

	t.Run("keeps an explicit status", func(t *testing.T) {
		txn := NewTransaction(date, "Office rent", decimal.NewFromInt(-200), "USD", "rent", "operations", TransactionStatusApproved)
		if txn.Status != TransactionStatusApproved {
			t.Errorf("expected status approved, got %s", txn.Status)
		}
	})

	t.Run("assigns distinct ids", func(t *testing.T) {
		a := NewTransaction(date, "a", decimal.NewFromInt(1), "USD", "misc", "inbox", "")
		b := NewTransaction(date, "b", decimal.NewFromInt(1), "USD", "misc", "inbox", "")
		if a.ID == b.ID {
			t.Error("expected distinct ids for distinct transactions")
		}
	})
}

func TestTransaction_SignConvention(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	inflow := NewTransaction(date, "Invoice payment", decimal.NewFromInt(1000), "USD", "sales", "clients", TransactionStatusApproved)
	outflow := NewTransaction(date, "Office rent", decimal.NewFromInt(-200), "USD", "rent", "operations", TransactionStatusApproved)

	if !inflow.IsInflow() {
		t.Error("positive amount must be an inflow")
	}
	if outflow.IsInflow() {
		t.Error("negative amount must be an outflow")
	}

	// Status changes never flip the stored sign.
	outflow.Status = TransactionStatusCancelled
	if !outflow.Amount.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("amount changed on status transition: %s", outflow.Amount)
	}
	if outflow.CountsTowardTotals() {
		t.Error("cancelled transaction must not count toward totals")
	}
}

func TestValidTransactionStatus(t *testing.T) {
	for _, s := range []TransactionStatus{
		TransactionStatusDraft, TransactionStatusPending, TransactionStatusApproved,
		TransactionStatusReconciled, TransactionStatusOverdue, TransactionStatusCancelled,
	} {
		if !ValidTransactionStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidTransactionStatus("archived") {
		t.Error("expected archived to be invalid")
	}
}
