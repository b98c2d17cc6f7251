// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/application/usecase/currency"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// GetDashboardKPIsInput represents the input for a KPI computation.
type GetDashboardKPIsInput struct {
	Period            Period
	ReportingCurrency string
}

// DashboardKPIs is the period/currency-scoped financial summary handed to
// the dashboard. It is derived on every request, never stored. An empty
// period yields the same shape with zeroed figures.
type DashboardKPIs struct {
	Period   string
	Currency string

	// Figures over in-period transactions, normalized to the reporting
	// currency. Cancelled transactions are skipped.
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal

	// CashBalance nets only approved and reconciled transactions, the
	// money that actually moved during the period.
	CashBalance decimal.Decimal

	// OutstandingInvoices totals in-period invoices whose effective status
	// is pending or overdue.
	OutstandingInvoices decimal.Decimal
	OverdueInvoiceCount int

	TransactionCount int

	// ExcludedRecords counts records dropped from the aggregate because
	// their currency could not be converted. A non-zero value flags a
	// partial result; the computation itself still succeeds.
	ExcludedRecords int
}

// GetDashboardKPIsUseCase computes dashboard KPIs from the ledger.
type GetDashboardKPIsUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
	normalizer      *currency.Normalizer
	now             func() time.Time
}

// NewGetDashboardKPIsUseCase creates a new GetDashboardKPIsUseCase instance.
func NewGetDashboardKPIsUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
	normalizer *currency.Normalizer,
) *GetDashboardKPIsUseCase {
	return &GetDashboardKPIsUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		normalizer:      normalizer,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source used for effective-status derivation.
func (uc *GetDashboardKPIsUseCase) WithClock(now func() time.Time) *GetDashboardKPIsUseCase {
	uc.now = now
	return uc
}

// Execute computes the KPI snapshot for the given period and reporting
// currency. Records whose currency cannot be converted are excluded and
// counted rather than failing the whole computation; with no intervening
// mutation and an unchanged clock, two runs yield identical results.
func (uc *GetDashboardKPIsUseCase) Execute(ctx context.Context, input GetDashboardKPIsInput) (*DashboardKPIs, error) {
	reporting := input.ReportingCurrency
	if !isValidCurrencyCode(reporting) {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidReportingCurrency,
			"reporting currency must be a three-letter ISO code",
			domainerror.ErrInvalidReportingCurrency,
		)
	}

	kpis := &DashboardKPIs{
		Period:              input.Period.Label,
		Currency:            reporting,
		TotalRevenue:        decimal.Zero,
		TotalExpenses:       decimal.Zero,
		NetProfit:           decimal.Zero,
		CashBalance:         decimal.Zero,
		OutstandingInvoices: decimal.Zero,
	}

	if err := uc.aggregateTransactions(ctx, input.Period, reporting, kpis); err != nil {
		return nil, err
	}
	if err := uc.aggregateInvoices(ctx, input.Period, reporting, kpis); err != nil {
		return nil, err
	}

	kpis.NetProfit = kpis.TotalRevenue.Sub(kpis.TotalExpenses)
	return kpis, nil
}

func (uc *GetDashboardKPIsUseCase) aggregateTransactions(ctx context.Context, period Period, reporting string, kpis *DashboardKPIs) error {
	filter := adapter.TransactionFilter{
		StartDate: &period.Start,
		EndDate:   &period.End,
	}
	transactions, _, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.Pagination{})
	if err != nil {
		return fmt.Errorf("failed to load transactions for aggregation: %w", err)
	}

	for _, t := range transactions {
		if !t.CountsTowardTotals() {
			continue
		}
		kpis.TransactionCount++

		amount, err := uc.normalizer.Normalize(ctx, t.Amount, t.Currency, reporting, t.Date)
		if err != nil {
			if isConversionFailure(err) {
				kpis.ExcludedRecords++
				continue
			}
			return err
		}

		if amount.IsPositive() {
			kpis.TotalRevenue = kpis.TotalRevenue.Add(amount)
		} else {
			kpis.TotalExpenses = kpis.TotalExpenses.Add(amount.Neg())
		}

		if t.Status == entity.TransactionStatusApproved || t.Status == entity.TransactionStatusReconciled {
			kpis.CashBalance = kpis.CashBalance.Add(amount)
		}
	}
	return nil
}

func (uc *GetDashboardKPIsUseCase) aggregateInvoices(ctx context.Context, period Period, reporting string, kpis *DashboardKPIs) error {
	filter := adapter.InvoiceFilter{
		StartDate: &period.Start,
		EndDate:   &period.End,
	}
	invoices, _, err := uc.invoiceRepo.FindByFilter(ctx, filter, adapter.Pagination{})
	if err != nil {
		return fmt.Errorf("failed to load invoices for aggregation: %w", err)
	}

	now := uc.now()
	for _, inv := range invoices {
		if !inv.IsOutstanding(now) {
			continue
		}

		amount, err := uc.normalizer.Normalize(ctx, inv.TotalAmount, inv.Currency, reporting, inv.Date)
		if err != nil {
			if isConversionFailure(err) {
				kpis.ExcludedRecords++
				continue
			}
			return err
		}

		kpis.OutstandingInvoices = kpis.OutstandingInvoices.Add(amount)
		if inv.EffectiveStatus(now) == entity.InvoiceStatusOverdue {
			kpis.OverdueInvoiceCount++
		}
	}
	return nil
}

// isConversionFailure distinguishes a per-record conversion problem, which
// only excludes that record, from an environment failure that aborts the
// computation.
func isConversionFailure(err error) bool {
	var rateErr *domainerror.RateError
	return errors.As(err, &rateErr)
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
