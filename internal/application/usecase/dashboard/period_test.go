package dashboard

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

func TestParsePeriod(t *testing.T) {
	t.Run("calendar month", func(t *testing.T) {
		p, err := ParsePeriod("2024-03")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Label != "March 2024" {
			t.Errorf("expected label 'March 2024', got %q", p.Label)
		}
		if !p.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected period to contain the first of the month")
		}
		if !p.Contains(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)) {
			t.Error("expected period to contain the last day of the month")
		}
		if p.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected period to exclude the next month")
		}
	})

	t.Run("custom range", func(t *testing.T) {
		p, err := ParsePeriod("2024-01-10..2024-02-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Contains(time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)) {
			t.Error("range end day must be inclusive")
		}
		if p.Contains(time.Date(2024, 1, 9, 23, 59, 0, 0, time.UTC)) {
			t.Error("expected period to exclude days before the start")
		}
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := ParsePeriod("2024-02-20..2024-01-10")
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		for _, expr := range []string{"", "march", "2024-13", "2024-01-10..bogus"} {
			if _, err := ParsePeriod(expr); !errors.Is(err, domainerror.ErrInvalidPeriod) && !errors.Is(err, domainerror.ErrInvalidDateRange) {
				t.Errorf("expected parse failure for %q, got %v", expr, err)
			}
		}
	})
}
