// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// RedisRateSource resolves exchange rates from Redis. Rates are published
// by an external feed under dated keys; the undated key carries the latest
// rate and serves as fallback when no rate exists for the requested day.
//
// Key scheme:
//
//	fx:rate:<FROM>:<TO>:<YYYY-MM-DD>  rate valid on that day
//	fx:rate:<FROM>:<TO>               latest published rate
type RedisRateSource struct {
	client *redis.Client
}

// NewRedisRateSource creates a Redis-backed rate source.
func NewRedisRateSource(client *redis.Client) *RedisRateSource {
	return &RedisRateSource{
		client: client,
	}
}

// Rate returns the from→to rate valid at asOf. A missing pair surfaces as
// ErrRateUnavailable; an unparsable or non-positive stored value surfaces
// as ErrInvalidRate. The context deadline set by the caller bounds the
// lookup.
func (s *RedisRateSource) Rate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error) {
	datedKey := fmt.Sprintf("fx:rate:%s:%s:%s", from, to, asOf.UTC().Format("2006-01-02"))
	latestKey := fmt.Sprintf("fx:rate:%s:%s", from, to)

	raw, err := s.client.Get(ctx, datedKey).Result()
	if errors.Is(err, redis.Nil) {
		raw, err = s.client.Get(ctx, latestKey).Result()
	}
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, fmt.Errorf("%w: no rate published for %s/%s", domainerror.ErrRateUnavailable, from, to)
		}
		return decimal.Zero, fmt.Errorf("rate lookup %s/%s: %w", from, to, err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: stored rate %q for %s/%s is not a number", domainerror.ErrInvalidRate, raw, from, to)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: stored rate %s for %s/%s", domainerror.ErrInvalidRate, rate, from, to)
	}
	return rate, nil
}
