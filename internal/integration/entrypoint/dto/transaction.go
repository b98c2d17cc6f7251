// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/worldbooks/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required,min=1,max=255"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Category    string `json:"category" binding:"required"`
	Folder      string `json:"folder,omitempty"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=draft pending approved reconciled overdue cancelled"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields are left untouched.
type UpdateTransactionRequest struct {
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *string `json:"amount,omitempty"`
	Currency    *string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Category    *string `json:"category,omitempty"`
	Folder      *string `json:"folder,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=draft pending approved reconciled overdue cancelled"`
}

// TransactionResponse represents a single transaction in API responses.
// Amount is rendered as a fixed two-decimal string so clients never see
// float artifacts.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Folder      string    `json:"folder,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Description: txn.Description,
		Amount:      txn.Amount.StringFixed(2),
		Currency:    txn.Currency,
		Category:    txn.Category,
		Folder:      txn.Folder,
		Status:      string(txn.Status),
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return TransactionListResponse{
		Transactions: transactions,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
