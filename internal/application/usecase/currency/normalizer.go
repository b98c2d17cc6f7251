// Package currency provides conversion of amounts between currencies for
// aggregation. Stored amounts are never mutated; conversion happens at
// read time so rate staleness cannot corrupt historical records.
package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// DefaultLookupTimeout bounds a single rate lookup when no timeout is
// configured.
const DefaultLookupTimeout = 2 * time.Second

// Normalizer converts amounts across currencies using a pluggable rate
// source. It is pure with respect to its inputs and caches nothing that
// outlives a single call.
type Normalizer struct {
	rates         adapter.RateSource
	lookupTimeout time.Duration
}

// NewNormalizer creates a Normalizer over the given rate source.
// A non-positive lookupTimeout falls back to DefaultLookupTimeout.
func NewNormalizer(rates adapter.RateSource, lookupTimeout time.Duration) *Normalizer {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return &Normalizer{
		rates:         rates,
		lookupTimeout: lookupTimeout,
	}
}

// Normalize converts amount from one currency to another using the rate
// valid at asOf. Identity conversion is exact and lookup-free. A missing
// rate, an invalid rate, or a lookup timeout all surface as a RateError
// wrapping ErrRateUnavailable; no default rate is ever substituted.
func (n *Normalizer) Normalize(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, n.lookupTimeout)
	defer cancel()

	rate, err := n.rates.Rate(lookupCtx, from, to, asOf)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return decimal.Zero, domainerror.NewRateError(
				domainerror.ErrCodeRateUnavailable, from, to,
				fmt.Errorf("%w: %v", domainerror.ErrRateUnavailable, err),
			)
		}
		if errors.Is(err, domainerror.ErrRateUnavailable) {
			return decimal.Zero, domainerror.NewRateError(domainerror.ErrCodeRateUnavailable, from, to, err)
		}
		if errors.Is(err, domainerror.ErrInvalidRate) {
			return decimal.Zero, domainerror.NewRateError(domainerror.ErrCodeInvalidRate, from, to, err)
		}
		return decimal.Zero, fmt.Errorf("rate lookup %s -> %s: %w", from, to, err)
	}

	if !rate.IsPositive() {
		return decimal.Zero, domainerror.NewRateError(domainerror.ErrCodeInvalidRate, from, to, domainerror.ErrInvalidRate)
	}

	return amount.Mul(rate), nil
}
