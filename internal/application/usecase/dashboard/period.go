// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"time"

	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// Period is a caller-specified date range scoping KPI aggregation.
// Bounds are inclusive and the label is what the dashboard displays.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

var monthNames = [...]string{
	"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthPeriod returns the calendar-month period containing the given
// year/month, labeled e.g. "March 2024".
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{
		Label: fmt.Sprintf("%s %d", monthNames[month], year),
		Start: start,
		End:   end,
	}
}

// CurrentMonthPeriod returns the calendar-month period containing now.
func CurrentMonthPeriod(now time.Time) Period {
	return MonthPeriod(now.Year(), now.Month())
}

// RangePeriod returns a custom period spanning start through end of the
// given end day, labeled "2006-01-02 – 2006-01-02".
func RangePeriod(start, end time.Time) (Period, error) {
	if end.Before(start) {
		return Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"period end must not be before period start",
			domainerror.ErrInvalidDateRange,
		)
	}
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	return Period{
		Label: start.Format("2006-01-02") + " - " + end.Format("2006-01-02"),
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		End:   endOfDay,
	}, nil
}

// ParsePeriod parses a period expression. Accepted forms:
//   - "2006-01"                  a calendar month
//   - "2006-01-02..2006-01-02"   an inclusive custom range
func ParsePeriod(expr string) (Period, error) {
	if t, err := time.Parse("2006-01", expr); err == nil {
		return MonthPeriod(t.Year(), t.Month()), nil
	}

	const sep = ".."
	for i := 0; i+len(sep) <= len(expr); i++ {
		if expr[i:i+len(sep)] != sep {
			continue
		}
		start, err := time.Parse("2006-01-02", expr[:i])
		if err != nil {
			break
		}
		end, err := time.Parse("2006-01-02", expr[i+len(sep):])
		if err != nil {
			break
		}
		return RangePeriod(start, end)
	}

	return Period{}, domainerror.NewDashboardError(
		domainerror.ErrCodeInvalidPeriod,
		fmt.Sprintf("cannot parse period %q", expr),
		domainerror.ErrInvalidPeriod,
	)
}

// Contains reports whether t falls within the period bounds.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}
