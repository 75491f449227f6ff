package services

import (
	"fmt"
	"time"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
)

// Period is a half-open time window [Start, End) covering one calendar month.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod builds the period for a "YYYY-MM" month key.
func MonthPeriod(monthKey string) (Period, error) {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return Period{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "mês inválido, use o formato YYYY-MM")
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// Previous returns the period for the calendar month immediately before p.
func (p Period) Previous() Period {
	return Period{Start: p.Start.AddDate(0, -1, 0), End: p.Start}
}

// Days returns the number of days in the period's month.
func (p Period) Days() int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(p.Start.Year(), p.Start.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthKey formats a time as the zero-padded, lexicographically sortable
// "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// CurrentMonthKey returns the month key for the current month.
func CurrentMonthKey() string {
	return MonthKey(time.Now().UTC())
}

// AddMonthClamped advances t by one calendar month, clamping the day of
// month to the last day of the target month (Jan 31 → Feb 28/29).
func AddMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	lastDay := time.Date(y, m+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
