// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
)

// ListInvoicesInput represents the input for listing invoices.
// Status filters match against the effective status, so pending invoices
// past their due date are found under "overdue".
type ListInvoicesInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []entity.InvoiceStatus
	Currency  string
	Customer  string
	Page      int
	Limit     int
}

// InvoiceOutput represents a single invoice in the output. Status carries
// the persisted value; EffectiveStatus the read-time derivation.
type InvoiceOutput struct {
	ID              uuid.UUID
	Number          string
	CustomerName    string
	Date            time.Time
	DueDate         time.Time
	TotalAmount     decimal.Decimal
	Currency        string
	Status          entity.InvoiceStatus
	EffectiveStatus entity.InvoiceStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListInvoicesOutput represents the output of listing invoices.
type ListInvoicesOutput struct {
	Invoices   []*InvoiceOutput
	Pagination PaginationOutput
}

// ListInvoicesUseCase handles listing invoices logic.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	now         func() time.Time
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source used for effective-status derivation.
func (uc *ListInvoicesUseCase) WithClock(now func() time.Time) *ListInvoicesUseCase {
	uc.now = now
	return uc
}

// Execute performs the invoice listing.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	now := uc.now()

	// Effective-status filtering cannot be pushed down to SQL because
	// overdue is derived at read time, so querying by status fetches the
	// full filtered set and narrows it here.
	filter := adapter.InvoiceFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Currency:  input.Currency,
		Customer:  input.Customer,
	}

	if len(input.Statuses) == 0 {
		pagination := adapter.Pagination{Limit: limit, Offset: (page - 1) * limit}
		invoices, total, err := uc.invoiceRepo.FindByFilter(ctx, filter, pagination)
		if err != nil {
			return nil, fmt.Errorf("failed to list invoices: %w", err)
		}
		return uc.buildOutput(invoices, total, page, limit, now), nil
	}

	invoices, _, err := uc.invoiceRepo.FindByFilter(ctx, filter, adapter.Pagination{})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	wanted := make(map[entity.InvoiceStatus]bool, len(input.Statuses))
	for _, s := range input.Statuses {
		wanted[s] = true
	}

	matched := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if wanted[inv.EffectiveStatus(now)] {
			matched = append(matched, inv)
		}
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return uc.buildOutput(matched[start:end], total, page, limit, now), nil
}

func (uc *ListInvoicesUseCase) buildOutput(invoices []*entity.Invoice, total int64, page, limit int, now time.Time) *ListInvoicesOutput {
	outputs := make([]*InvoiceOutput, len(invoices))
	for i, inv := range invoices {
		outputs[i] = toInvoiceOutput(inv, now)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListInvoicesOutput{
		Invoices: outputs,
		Pagination: PaginationOutput{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// toInvoiceOutput converts an entity into the snapshot handed to consumers.
func toInvoiceOutput(i *entity.Invoice, now time.Time) *InvoiceOutput {
	return &InvoiceOutput{
		ID:              i.ID,
		Number:          i.Number,
		CustomerName:    i.CustomerName,
		Date:            i.Date,
		DueDate:         i.DueDate,
		TotalAmount:     i.TotalAmount,
		Currency:        i.Currency,
		Status:          i.Status,
		EffectiveStatus: i.EffectiveStatus(now),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
