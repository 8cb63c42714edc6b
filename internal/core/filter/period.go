// Package filter turns the dashboard's search and period inputs into one SQL predicate
package filter

import (
	"strings"
	"time"
)

// Period bounds offers by how recently they were published
type Period string

// Supported periods
const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period1y  Period = "1y"
	PeriodAll Period = "all"
)

// Granularity is the time series bucket width
type Granularity string

// Bucket widths used by the time series
const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// ParsePeriod accepts the known tokens case-insensitively; anything else means all
func ParsePeriod(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Period7d, Period30d, Period90d, Period1y:
		return p
	default:
		return PeriodAll
	}
}

// Days is the window length; 0 for all
func (p Period) Days() int {
	switch p {
	case Period7d:
		return 7
	case Period30d:
		return 30
	case Period90d:
		return 90
	case Period1y:
		return 365
	default:
		return 0
	}
}

// LowerBound is now minus the period length; ok=false for all
func (p Period) LowerBound(now time.Time) (time.Time, bool) {
	d := p.Days()
	if d == 0 {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -d), true
}

// PreviousWindow is [now-2*days, now-days), the window trends compare against
func (p Period) PreviousWindow(now time.Time) (from, to time.Time, ok bool) {
	d := p.Days()
	if d == 0 {
		return time.Time{}, time.Time{}, false
	}
	return now.AddDate(0, 0, -2*d), now.AddDate(0, 0, -d), true
}

// Granularity picks the bucket width for the time series
func (p Period) Granularity() Granularity {
	switch p {
	case Period7d, Period30d:
		return Day
	case Period90d, Period1y:
		return Week
	default:
		return Month
	}
}

// String implements fmt.Stringer
func (p Period) String() string { return string(p) }
