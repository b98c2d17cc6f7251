// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/worldbooks/backend/internal/application/adapter"
)

// RecentTransactionsInput represents the input for the recent-activity query.
type RecentTransactionsInput struct {
	Limit int
}

// RecentTransactionsOutput represents the output of the recent-activity query.
type RecentTransactionsOutput struct {
	Transactions []*TransactionOutput
}

// RecentTransactionsUseCase returns the N most recent transactions in the
// store's stable order.
type RecentTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewRecentTransactionsUseCase creates a new RecentTransactionsUseCase instance.
func NewRecentTransactionsUseCase(transactionRepo adapter.TransactionRepository) *RecentTransactionsUseCase {
	return &RecentTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute fetches at most Limit transactions. A non-positive limit yields
// an empty result; a limit beyond the stored count returns everything
// available without padding.
func (uc *RecentTransactionsUseCase) Execute(ctx context.Context, input RecentTransactionsInput) (*RecentTransactionsOutput, error) {
	if input.Limit <= 0 {
		return &RecentTransactionsOutput{Transactions: []*TransactionOutput{}}, nil
	}

	transactions, err := uc.transactionRepo.FindRecent(ctx, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
	}

	outputs := make([]*TransactionOutput, len(transactions))
	for i, t := range transactions {
		outputs[i] = toTransactionOutput(t)
	}

	return &RecentTransactionsOutput{Transactions: outputs}, nil
}
