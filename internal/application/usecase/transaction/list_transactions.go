// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []entity.TransactionStatus
	Category  string
	Folder    string
	Currency  string
	Search    string
	Page      int
	Limit     int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Folder      string
	Status      entity.TransactionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
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

	filter := adapter.TransactionFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Statuses:  input.Statuses,
		Category:  input.Category,
		Folder:    input.Folder,
		Currency:  input.Currency,
		Search:    input.Search,
	}
	pagination := adapter.Pagination{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	transactions, total, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	outputs := make([]*TransactionOutput, len(transactions))
	for i, t := range transactions {
		outputs[i] = toTransactionOutput(t)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListTransactionsOutput{
		Transactions: outputs,
		Pagination: PaginationOutput{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// toTransactionOutput converts an entity into the output representation
// handed to consumers. Outputs are snapshots: mutating one never reaches
// the store.
func toTransactionOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Category:    t.Category,
		Folder:      t.Folder,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
