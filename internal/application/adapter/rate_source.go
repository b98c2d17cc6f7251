// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource supplies exchange rates for currency pairs. Implementations
// live in the integration layer (Redis-backed feed, static table).
//
// Rate lookups are the only external I/O in the aggregation path; callers
// bound them with a context deadline. A source must return
// domainerror.ErrRateUnavailable (possibly wrapped) when no rate exists
// for the pair at asOf, and must never invent a default rate.
type RateSource interface {
	// Rate returns the multiplier converting one unit of from into to,
	// valid at asOf.
	Rate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error)
}

// RevisionReader exposes the ledger's monotonic revision counter. Every
// successful mutation advances it, so consumers can detect change without
// deep comparison. Read-time status derivation never advances it.
type RevisionReader interface {
	Revision() uint64
}
