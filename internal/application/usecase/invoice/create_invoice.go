// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// CreateInvoiceInput represents the input for invoice creation.
// An empty Status defaults to draft.
type CreateInvoiceInput struct {
	Number       string
	CustomerName string
	Date         time.Time
	DueDate      time.Time
	TotalAmount  decimal.Decimal
	Currency     string
	Status       entity.InvoiceStatus
}

// CreateInvoiceOutput represents the output of invoice creation.
type CreateInvoiceOutput struct {
	Invoice *InvoiceOutput
}

// CreateInvoiceUseCase handles invoice creation logic.
type CreateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute performs the invoice creation.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	invoice := entity.NewInvoice(
		input.Number,
		input.CustomerName,
		input.Date,
		input.DueDate,
		input.TotalAmount,
		normalizeCurrencyCode(input.Currency),
		input.Status,
	)

	if err := validateInvoice(invoice); err != nil {
		return nil, err
	}

	taken, err := uc.invoiceRepo.ExistsByNumber(ctx, invoice.Number, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if taken {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeDuplicateInvoiceNumber,
			fmt.Sprintf("invoice number %q is already in use", invoice.Number),
			domainerror.ErrDuplicateInvoiceNumber,
		)
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeDuplicateInvoiceNumber,
				fmt.Sprintf("invoice number %q is already in use", invoice.Number),
				domainerror.ErrDuplicateInvoiceNumber,
			)
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &CreateInvoiceOutput{
		Invoice: toInvoiceOutput(invoice, time.Now().UTC()),
	}, nil
}

// validateInvoice checks required fields and cross-field invariants on a
// full record. It is applied on create and re-applied to the patched
// record on update.
func validateInvoice(i *entity.Invoice) error {
	if i.Number == "" {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceFields,
			"invoice number is required",
			domainerror.ErrMissingInvoiceNumber,
		)
	}
	if i.CustomerName == "" {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceFields,
			"customer name is required",
			domainerror.ErrMissingCustomerName,
		)
	}
	if i.Date.IsZero() || i.DueDate.IsZero() {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceFields,
			"issue date and due date are required",
			domainerror.ErrDueDateBeforeIssueDate,
		)
	}
	if i.DueDate.Before(i.Date) {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeDueDateBeforeIssueDate,
			"due date must not be before issue date",
			domainerror.ErrDueDateBeforeIssueDate,
		)
	}
	if i.TotalAmount.IsNegative() {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeNegativeInvoiceTotal,
			"total amount must not be negative",
			domainerror.ErrNegativeInvoiceTotal,
		)
	}
	if !isValidCurrencyCode(i.Currency) {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceCurrency,
			"currency must be a three-letter ISO code",
			domainerror.ErrInvalidInvoiceCurrency,
		)
	}
	if !entity.ValidInvoiceStatus(i.Status) {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceStatus,
			"status must be one of: draft, pending, paid, overdue, cancelled",
			domainerror.ErrInvalidInvoiceStatus,
		)
	}
	return nil
}

// isValidCurrencyCode checks for a three-letter uppercase ISO 4217 code.
func isValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func normalizeCurrencyCode(code string) string {
	out := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
