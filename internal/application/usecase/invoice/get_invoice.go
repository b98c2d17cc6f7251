// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/worldbooks/backend/internal/application/adapter"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// GetInvoiceInput represents the input for fetching a single invoice.
type GetInvoiceInput struct {
	InvoiceID uuid.UUID
}

// GetInvoiceOutput represents the output of fetching a single invoice.
type GetInvoiceOutput struct {
	Invoice *InvoiceOutput
}

// GetInvoiceUseCase handles fetching a single invoice.
type GetInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	now         func() time.Time
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source used for effective-status derivation.
func (uc *GetInvoiceUseCase) WithClock(now func() time.Time) *GetInvoiceUseCase {
	uc.now = now
	return uc
}

// Execute fetches the invoice by id.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*GetInvoiceOutput, error) {
	invoice, err := uc.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	return &GetInvoiceOutput{
		Invoice: toInvoiceOutput(invoice, uc.now()),
	}, nil
}
