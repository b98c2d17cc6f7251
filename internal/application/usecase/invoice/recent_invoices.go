// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/worldbooks/backend/internal/application/adapter"
)

// RecentInvoicesInput represents the input for the recent-activity query.
type RecentInvoicesInput struct {
	Limit int
}

// RecentInvoicesOutput represents the output of the recent-activity query.
type RecentInvoicesOutput struct {
	Invoices []*InvoiceOutput
}

// RecentInvoicesUseCase returns the N most recent invoices in the store's
// stable order.
type RecentInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	now         func() time.Time
}

// NewRecentInvoicesUseCase creates a new RecentInvoicesUseCase instance.
func NewRecentInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *RecentInvoicesUseCase {
	return &RecentInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source used for effective-status derivation.
func (uc *RecentInvoicesUseCase) WithClock(now func() time.Time) *RecentInvoicesUseCase {
	uc.now = now
	return uc
}

// Execute fetches at most Limit invoices. A non-positive limit yields an
// empty result; a limit beyond the stored count returns everything
// available without padding.
func (uc *RecentInvoicesUseCase) Execute(ctx context.Context, input RecentInvoicesInput) (*RecentInvoicesOutput, error) {
	if input.Limit <= 0 {
		return &RecentInvoicesOutput{Invoices: []*InvoiceOutput{}}, nil
	}

	invoices, err := uc.invoiceRepo.FindRecent(ctx, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent invoices: %w", err)
	}

	now := uc.now()
	outputs := make([]*InvoiceOutput, len(invoices))
	for i, inv := range invoices {
		outputs[i] = toInvoiceOutput(inv, now)
	}

	return &RecentInvoicesOutput{Invoices: outputs}, nil
}
