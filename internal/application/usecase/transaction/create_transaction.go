// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation.
// An empty Status defaults to pending.
type CreateTransactionInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Folder      string
	Status      entity.TransactionStatus
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction := entity.NewTransaction(
		input.Date,
		input.Description,
		input.Amount,
		normalizeCurrencyCode(input.Currency),
		input.Category,
		input.Folder,
		input.Status,
	)

	if err := validateTransaction(transaction); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction),
	}, nil
}

// validateTransaction checks required fields and invariants on a full record.
// It is applied on create and re-applied to the patched record on update.
func validateTransaction(t *entity.Transaction) error {
	if t.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"date is required",
			domainerror.ErrMissingTransactionDate,
		)
	}
	if t.Description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			domainerror.ErrMissingTransactionDescription,
		)
	}
	if len(t.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if !isValidCurrencyCode(t.Currency) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionCurrency,
			"currency must be a three-letter ISO code",
			domainerror.ErrInvalidTransactionCurrency,
		)
	}
	if !entity.ValidTransactionStatus(t.Status) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"status must be one of: draft, pending, approved, reconciled, overdue, cancelled",
			domainerror.ErrInvalidTransactionStatus,
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
