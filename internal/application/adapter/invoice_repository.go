// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/worldbooks/backend/internal/domain/entity"
)

// InvoiceFilter defines filter options for listing invoices.
// Date bounds apply to the issue date and are inclusive.
type InvoiceFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []entity.InvoiceStatus
	Currency  string
	Customer  string // Case-insensitive customer name match
}

// InvoiceRepository defines the interface for invoice persistence operations.
// Listing order is stable: most-recent-first by issue date, ties broken by id.
type InvoiceRepository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindByFilter retrieves invoices matching the filter in stable order,
	// along with the total match count before pagination.
	FindByFilter(ctx context.Context, filter InvoiceFilter, pagination Pagination) ([]*entity.Invoice, int64, error)

	// FindRecent retrieves at most n invoices in stable order.
	// n <= 0 yields an empty slice.
	FindRecent(ctx context.Context, n int) ([]*entity.Invoice, error)

	// ExistsByNumber reports whether another invoice already uses the given
	// number. excludeID skips the record being updated.
	ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error)

	// Mutate applies a change to the invoice with the given id. The apply
	// callback receives the current record and edits it in place; returning
	// an error aborts the mutation leaving the store unchanged. Writes to
	// the same id are serialized and atomic with respect to readers.
	Mutate(ctx context.Context, id uuid.UUID, apply func(*entity.Invoice) error) (*entity.Invoice, error)

	// Delete removes the invoice permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of stored invoices.
	Count(ctx context.Context) (int64, error)
}
