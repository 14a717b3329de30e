package correlate

import (
	"fmt"
	"time"
)

// ParsePeriod validates a "YYYY-MM" reconciliation period.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q (want YYYY-MM): %w", period, err)
	}
	return t, nil
}

// PeriodRange converts a "YYYY-MM" period into the inclusive unix second
// range covering that month in the given zone: first day 00:00:00 through
// last day 23:59:59.
func PeriodRange(period string, zone *time.Location) (int64, int64, error) {
	t, err := ParsePeriod(period)
	if err != nil {
		return 0, 0, err
	}
	if zone == nil {
		zone = time.UTC
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, zone)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start.Unix(), end.Unix(), nil
}
