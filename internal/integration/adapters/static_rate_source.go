// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// StaticRateSource serves rates from an in-memory table. It backs
// deployments without a rate feed and the test suites. Rates are not
// dated; the table answers every asOf with the same value.
type StaticRateSource struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

// NewStaticRateSource creates an empty static rate source.
func NewStaticRateSource() *StaticRateSource {
	return &StaticRateSource{
		rates: make(map[string]decimal.Decimal),
	}
}

// SetRate publishes the from→to rate. Publishing a pair does not imply
// its inverse; set both directions when both are needed.
func (s *StaticRateSource) SetRate(from, to string, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[from+":"+to] = rate
}

// Rate returns the from→to rate. Unknown pairs surface as
// ErrRateUnavailable.
func (s *StaticRateSource) Rate(_ context.Context, from, to string, _ time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	rate, ok := s.rates[from+":"+to]
	s.mu.RUnlock()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate published for %s/%s", domainerror.ErrRateUnavailable, from, to)
	}
	return rate, nil
}
