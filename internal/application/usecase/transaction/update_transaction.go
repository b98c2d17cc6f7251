// Package transaction contains transaction-related use cases.
package transaction

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

// UpdateTransactionInput represents the partial change set for a transaction
// update. Nil fields are left untouched.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Currency      *string
	Category      *string
	Folder        *string
	Status        *entity.TransactionStatus
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction update. The patch is applied and the
// full resulting record re-validated inside the store's mutation boundary,
// so a failed validation leaves the store unchanged.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	updated, err := uc.transactionRepo.Mutate(ctx, input.TransactionID, func(transaction *entity.Transaction) error {
		if input.Date != nil {
			transaction.Date = *input.Date
		}
		if input.Description != nil {
			transaction.Description = *input.Description
		}
		if input.Amount != nil {
			transaction.Amount = *input.Amount
		}
		if input.Currency != nil {
			transaction.Currency = normalizeCurrencyCode(*input.Currency)
		}
		if input.Category != nil {
			transaction.Category = *input.Category
		}
		if input.Folder != nil {
			transaction.Folder = *input.Folder
		}
		if input.Status != nil {
			transaction.Status = *input.Status
		}

		if err := validateTransaction(transaction); err != nil {
			return err
		}

		transaction.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		var txnErr *domainerror.TransactionError
		if errors.As(err, &txnErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutput(updated),
	}, nil
}
