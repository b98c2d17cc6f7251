// Package seed populates an empty ledger with demonstration data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
)

// SeedSampleDataOutput reports what the seeding run did.
type SeedSampleDataOutput struct {
	Seeded             bool
	TransactionsLoaded int
	InvoicesLoaded     int
}

// SeedSampleDataUseCase loads a small demonstration dataset. Seeding only
// runs against a completely empty ledger; a store holding any transaction
// or invoice is left untouched so real data can never be mixed with
// samples.
type SeedSampleDataUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
	now             func() time.Time
}

// NewSeedSampleDataUseCase creates a new SeedSampleDataUseCase instance.
func NewSeedSampleDataUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
) *SeedSampleDataUseCase {
	return &SeedSampleDataUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source used to anchor sample dates.
func (uc *SeedSampleDataUseCase) WithClock(now func() time.Time) *SeedSampleDataUseCase {
	uc.now = now
	return uc
}

// Execute seeds the ledger if and only if it is empty. The output reports
// Seeded=false when data already exists; that is not an error.
func (uc *SeedSampleDataUseCase) Execute(ctx context.Context) (*SeedSampleDataOutput, error) {
	txnCount, err := uc.transactionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	invCount, err := uc.invoiceRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	if txnCount > 0 || invCount > 0 {
		return &SeedSampleDataOutput{Seeded: false}, nil
	}

	transactions := uc.sampleTransactions()
	for _, txn := range transactions {
		if err := uc.transactionRepo.Create(ctx, txn); err != nil {
			return nil, fmt.Errorf("failed to seed transaction %q: %w", txn.Description, err)
		}
	}

	invoices := uc.sampleInvoices()
	for _, inv := range invoices {
		if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("failed to seed invoice %q: %w", inv.Number, err)
		}
	}

	return &SeedSampleDataOutput{
		Seeded:             true,
		TransactionsLoaded: len(transactions),
		InvoicesLoaded:     len(invoices),
	}, nil
}

// sampleTransactions spans the current and previous month so the default
// dashboard period shows non-zero figures right after seeding.
func (uc *SeedSampleDataUseCase) sampleTransactions() []*entity.Transaction {
	now := uc.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	return []*entity.Transaction{
		entity.NewTransaction(thisMonth.AddDate(0, 0, 2), "Consulting retainer", decimal.RequireFromString("4500.00"), "USD", "sales", "clients", entity.TransactionStatusApproved),
		entity.NewTransaction(thisMonth.AddDate(0, 0, 5), "Office rent", decimal.RequireFromString("-1200.00"), "USD", "rent", "operations", entity.TransactionStatusReconciled),
		entity.NewTransaction(thisMonth.AddDate(0, 0, 8), "SaaS subscriptions", decimal.RequireFromString("-89.99"), "USD", "software", "operations", entity.TransactionStatusApproved),
		entity.NewTransaction(thisMonth.AddDate(0, 0, 12), "Workshop fee", decimal.RequireFromString("750.00"), "EUR", "sales", "clients", entity.TransactionStatusPending),
		entity.NewTransaction(lastMonth.AddDate(0, 0, 3), "Consulting retainer", decimal.RequireFromString("4500.00"), "USD", "sales", "clients", entity.TransactionStatusReconciled),
		entity.NewTransaction(lastMonth.AddDate(0, 0, 6), "Office rent", decimal.RequireFromString("-1200.00"), "USD", "rent", "operations", entity.TransactionStatusReconciled),
		entity.NewTransaction(lastMonth.AddDate(0, 0, 15), "Hardware refresh", decimal.RequireFromString("-2300.50"), "USD", "equipment", "operations", entity.TransactionStatusApproved),
		entity.NewTransaction(lastMonth.AddDate(0, 0, 20), "Cancelled duplicate charge", decimal.RequireFromString("-99.00"), "USD", "software", "operations", entity.TransactionStatusCancelled),
	}
}

// sampleInvoices includes one invoice already past due so the overdue
// derivation is visible immediately.
func (uc *SeedSampleDataUseCase) sampleInvoices() []*entity.Invoice {
	now := uc.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	return []*entity.Invoice{
		entity.NewInvoice("INV-1001", "Acme Corp", lastMonth.AddDate(0, 0, 1), lastMonth.AddDate(0, 0, 15), decimal.RequireFromString("2500.00"), "USD", entity.InvoiceStatusPending),
		entity.NewInvoice("INV-1002", "Globex", lastMonth.AddDate(0, 0, 10), thisMonth.AddDate(0, 0, 10), decimal.RequireFromString("1800.00"), "USD", entity.InvoiceStatusPaid),
		entity.NewInvoice("INV-1003", "Initech", thisMonth.AddDate(0, 0, 1), thisMonth.AddDate(1, 0, 0), decimal.RequireFromString("3200.00"), "EUR", entity.InvoiceStatusPending),
		entity.NewInvoice("INV-1004", "Umbrella Ltd", thisMonth.AddDate(0, 0, 4), thisMonth.AddDate(0, 1, 0), decimal.RequireFromString("940.00"), "USD", entity.InvoiceStatusDraft),
	}
}
