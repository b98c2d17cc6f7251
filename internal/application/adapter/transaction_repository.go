// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/worldbooks/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
// Date bounds are inclusive.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []entity.TransactionStatus
	Category  string
	Folder    string
	Currency  string
	Search    string // Case-insensitive description match
}

// Pagination defines limit/offset pagination. A zero Limit means no limit.
type Pagination struct {
	Limit  int
	Offset int
}

// TransactionRepository defines the interface for transaction persistence operations.
// Listing order is stable: most-recent-first by date, ties broken by id,
// so "N most recent" queries are reproducible.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter in stable order,
	// along with the total match count before pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination Pagination) ([]*entity.Transaction, int64, error)

	// FindRecent retrieves at most n transactions in stable order.
	// n <= 0 yields an empty slice.
	FindRecent(ctx context.Context, n int) ([]*entity.Transaction, error)

	// Mutate applies a change to the transaction with the given id. The
	// apply callback receives the current record and edits it in place;
	// returning an error aborts the mutation leaving the store unchanged.
	// Writes to the same id are serialized and atomic with respect to readers.
	Mutate(ctx context.Context, id uuid.UUID, apply func(*entity.Transaction) error) (*entity.Transaction, error)

	// Delete removes the transaction permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int64, error)
}
