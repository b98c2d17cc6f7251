// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/worldbooks/backend/internal/application/adapter"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// DeleteInvoiceInput represents the input for invoice deletion.
type DeleteInvoiceInput struct {
	InvoiceID uuid.UUID
}

// DeleteInvoiceOutput represents the output of invoice deletion.
type DeleteInvoiceOutput struct {
	Success bool
}

// DeleteInvoiceUseCase handles invoice deletion logic.
type DeleteInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute performs the invoice deletion. Deleting an unknown id fails with
// a not-found error rather than succeeding silently.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, input DeleteInvoiceInput) (*DeleteInvoiceOutput, error) {
	if err := uc.invoiceRepo.Delete(ctx, input.InvoiceID); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to delete invoice: %w", err)
	}

	return &DeleteInvoiceOutput{
		Success: true,
	}, nil
}
