// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/worldbooks/backend/internal/application/usecase/dashboard"
)

// DashboardKPIsResponse represents the KPI snapshot handed to the
// dashboard. All monetary figures are fixed two-decimal strings in the
// reporting currency.
type DashboardKPIsResponse struct {
	Period   string `json:"period"`
	Currency string `json:"currency"`

	TotalRevenue  string `json:"total_revenue"`
	TotalExpenses string `json:"total_expenses"`
	NetProfit     string `json:"net_profit"`
	CashBalance   string `json:"cash_balance"`

	OutstandingInvoices string `json:"outstanding_invoices"`
	OverdueInvoiceCount int    `json:"overdue_invoice_count"`

	TransactionCount int `json:"transaction_count"`

	// ExcludedRecords flags a partial result: records whose currency could
	// not be converted were left out of the figures above.
	ExcludedRecords int `json:"excluded_records"`
}

// ToDashboardKPIsResponse converts DashboardKPIs to a DashboardKPIsResponse DTO.
func ToDashboardKPIsResponse(kpis *dashboard.DashboardKPIs) DashboardKPIsResponse {
	return DashboardKPIsResponse{
		Period:              kpis.Period,
		Currency:            kpis.Currency,
		TotalRevenue:        kpis.TotalRevenue.StringFixed(2),
		TotalExpenses:       kpis.TotalExpenses.StringFixed(2),
		NetProfit:           kpis.NetProfit.StringFixed(2),
		CashBalance:         kpis.CashBalance.StringFixed(2),
		OutstandingInvoices: kpis.OutstandingInvoices.StringFixed(2),
		OverdueInvoiceCount: kpis.OverdueInvoiceCount,
		TransactionCount:    kpis.TransactionCount,
		ExcludedRecords:     kpis.ExcludedRecords,
	}
}
