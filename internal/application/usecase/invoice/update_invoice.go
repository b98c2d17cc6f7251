// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// UpdateInvoiceInput represents the partial change set for an invoice
// update. Nil fields are left untouched. Setting Status to overdue is the
// explicit manual override; the derived overdue state needs no write.
type UpdateInvoiceInput struct {
	InvoiceID    uuid.UUID
	Number       *string
	CustomerName *string
	Date         *time.Time
	DueDate      *time.Time
	TotalAmount  *decimal.Decimal
	Currency     *string
	Status       *entity.InvoiceStatus
}

// UpdateInvoiceOutput represents the output of invoice update.
type UpdateInvoiceOutput struct {
	Invoice *InvoiceOutput
}

// UpdateInvoiceUseCase handles invoice update logic.
type UpdateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewUpdateInvoiceUseCase creates a new UpdateInvoiceUseCase instance.
func NewUpdateInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute performs the invoice update. The patch is applied and the full
// resulting record re-validated inside the store's mutation boundary,
// including the dueDate >= date invariant across both patched and kept
// fields.
func (uc *UpdateInvoiceUseCase) Execute(ctx context.Context, input UpdateInvoiceInput) (*UpdateInvoiceOutput, error) {
	if input.Number != nil {
		taken, err := uc.invoiceRepo.ExistsByNumber(ctx, *input.Number, input.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to check invoice number: %w", err)
		}
		if taken {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeDuplicateInvoiceNumber,
				fmt.Sprintf("invoice number %q is already in use", *input.Number),
				domainerror.ErrDuplicateInvoiceNumber,
			)
		}
	}

	updated, err := uc.invoiceRepo.Mutate(ctx, input.InvoiceID, func(invoice *entity.Invoice) error {
		if input.Number != nil {
			invoice.Number = *input.Number
		}
		if input.CustomerName != nil {
			invoice.CustomerName = *input.CustomerName
		}
		if input.Date != nil {
			invoice.Date = *input.Date
		}
		if input.DueDate != nil {
			invoice.DueDate = *input.DueDate
		}
		if input.TotalAmount != nil {
			invoice.TotalAmount = *input.TotalAmount
		}
		if input.Currency != nil {
			invoice.Currency = normalizeCurrencyCode(*input.Currency)
		}
		if input.Status != nil {
			invoice.Status = *input.Status
		}

		if err := validateInvoice(invoice); err != nil {
			return err
		}

		invoice.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		// A concurrent update can claim the number between the check above
		// and the write; the unique index reports it here instead.
		if errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeDuplicateInvoiceNumber,
				"invoice number is already in use",
				domainerror.ErrDuplicateInvoiceNumber,
			)
		}
		var invErr *domainerror.InvoiceError
		if errors.As(err, &invErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return &UpdateInvoiceOutput{
		Invoice: toInvoiceOutput(updated, time.Now().UTC()),
	}, nil
}
