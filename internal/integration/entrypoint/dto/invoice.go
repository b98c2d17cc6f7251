// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/worldbooks/backend/internal/application/usecase/invoice"
)

// CreateInvoiceRequest represents the request body for invoice creation.
type CreateInvoiceRequest struct {
	Number       string `json:"number" binding:"required,max=50"`
	CustomerName string `json:"customer_name" binding:"required,max=255"`
	Date         string `json:"date" binding:"required"`
	DueDate      string `json:"due_date" binding:"required"`
	TotalAmount  string `json:"total_amount" binding:"required"`
	Currency     string `json:"currency" binding:"required,len=3"`
	Status       string `json:"status,omitempty" binding:"omitempty,oneof=draft pending paid overdue cancelled"`
}

// UpdateInvoiceRequest represents the request body for invoice update.
// Absent fields are left untouched.
type UpdateInvoiceRequest struct {
	Number       *string `json:"number,omitempty" binding:"omitempty,max=50"`
	CustomerName *string `json:"customer_name,omitempty" binding:"omitempty,max=255"`
	Date         *string `json:"date,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	TotalAmount  *string `json:"total_amount,omitempty"`
	Currency     *string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=draft pending paid overdue cancelled"`
}

// InvoiceResponse represents a single invoice in API responses. Status is
// the stored value; EffectiveStatus is the read-time derivation and is
// what dashboards should display.
type InvoiceResponse struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	CustomerName    string    `json:"customer_name"`
	Date            string    `json:"date"`
	DueDate         string    `json:"due_date"`
	TotalAmount     string    `json:"total_amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	EffectiveStatus string    `json:"effective_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InvoiceListResponse represents the response for listing invoices.
type InvoiceListResponse struct {
	Invoices   []InvoiceResponse  `json:"invoices"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToInvoiceResponse converts an InvoiceOutput to an InvoiceResponse DTO.
func ToInvoiceResponse(inv *invoice.InvoiceOutput) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID.String(),
		Number:          inv.Number,
		CustomerName:    inv.CustomerName,
		Date:            inv.Date.Format("2006-01-02"),
		DueDate:         inv.DueDate.Format("2006-01-02"),
		TotalAmount:     inv.TotalAmount.StringFixed(2),
		Currency:        inv.Currency,
		Status:          string(inv.Status),
		EffectiveStatus: string(inv.EffectiveStatus),
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// ToInvoiceListResponse converts a ListInvoicesOutput to an InvoiceListResponse DTO.
func ToInvoiceListResponse(output *invoice.ListInvoicesOutput) InvoiceListResponse {
	invoices := make([]InvoiceResponse, len(output.Invoices))
	for i, inv := range output.Invoices {
		invoices[i] = ToInvoiceResponse(inv)
	}
	return InvoiceListResponse{
		Invoices: invoices,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
