package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// fakeRateSource returns canned rates keyed by "FROM/TO".
type fakeRateSource struct {
	rates map[string]decimal.Decimal
	err   error
	calls int
	block bool
}

func (f *fakeRateSource) Rate(ctx context.Context, from, to string, _ time.Time) (decimal.Decimal, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return decimal.Zero, ctx.Err()
	}
	if f.err != nil {
		return decimal.Zero, f.err
	}
	rate, ok := f.rates[from+"/"+to]
	if !ok {
		return decimal.Zero, domainerror.ErrRateUnavailable
	}
	return rate, nil
}

func TestNormalizer_Normalize(t *testing.T) {
	asOf := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("identity conversion is exact and lookup-free", func(t *testing.T) {
		src := &fakeRateSource{}
		n := NewNormalizer(src, time.Second)

		amount := decimal.RequireFromString("123.45")
		got, err := n.Normalize(context.Background(), amount, "USD", "USD", asOf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(amount) {
			t.Errorf("expected %s, got %s", amount, got)
		}
		if src.calls != 0 {
			t.Errorf("identity conversion must not consult the rate source, got %d calls", src.calls)
		}
	})

	t.Run("converts via the looked-up rate", func(t *testing.T) {
		src := &fakeRateSource{rates: map[string]decimal.Decimal{
			"EUR/USD": decimal.RequireFromString("1.10"),
		}}
		n := NewNormalizer(src, time.Second)

		got, err := n.Normalize(context.Background(), decimal.NewFromInt(100), "EUR", "USD", asOf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.RequireFromString("110.00")
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("missing rate surfaces as RateError", func(t *testing.T) {
		src := &fakeRateSource{rates: map[string]decimal.Decimal{}}
		n := NewNormalizer(src, time.Second)

		_, err := n.Normalize(context.Background(), decimal.NewFromInt(100), "GBP", "JPY", asOf)
		if !errors.Is(err, domainerror.ErrRateUnavailable) {
			t.Fatalf("expected ErrRateUnavailable, got %v", err)
		}
		var rateErr *domainerror.RateError
		if !errors.As(err, &rateErr) {
			t.Fatalf("expected RateError, got %T", err)
		}
		if rateErr.From != "GBP" || rateErr.To != "JPY" {
			t.Errorf("expected pair GBP/JPY, got %s/%s", rateErr.From, rateErr.To)
		}
	})

	t.Run("lookup timeout behaves as rate unavailable", func(t *testing.T) {
		src := &fakeRateSource{block: true}
		n := NewNormalizer(src, 10*time.Millisecond)

		_, err := n.Normalize(context.Background(), decimal.NewFromInt(100), "EUR", "USD", asOf)
		if !errors.Is(err, domainerror.ErrRateUnavailable) {
			t.Fatalf("expected ErrRateUnavailable on timeout, got %v", err)
		}
	})

	t.Run("non-positive rate is rejected", func(t *testing.T) {
		src := &fakeRateSource{rates: map[string]decimal.Decimal{
			"EUR/USD": decimal.Zero,
		}}
		n := NewNormalizer(src, time.Second)

		_, err := n.Normalize(context.Background(), decimal.NewFromInt(100), "EUR", "USD", asOf)
		if !errors.Is(err, domainerror.ErrInvalidRate) {
			t.Fatalf("expected ErrInvalidRate, got %v", err)
		}
	})
}
