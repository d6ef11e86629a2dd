package service

import "time"

// Grouping granularities and aggregation modes.
const (
	GroupByDay   = "day"
	GroupByMonth = "month"
	GroupByYear  = "year"

	ModeAccrual = "accrual"
	ModeCash    = "cash"
	ModeBoth    = "both"
)

// DateLayout is the ISO calendar date format used on all API boundaries.
const DateLayout = "2006-01-02"

// PeriodKey renders the bucket key for a date: YYYY-MM-DD, YYYY-MM or YYYY.
func PeriodKey(d time.Time, groupBy string) string {
	switch groupBy {
	case GroupByDay:
		return d.Format("2006-01-02")
	case GroupByMonth:
		return d.Format("2006-01")
	default:
		return d.Format("2006")
	}
}

// PeriodKeys enumerates every period key in [from, to]. An inverted range
// yields nil.
func PeriodKeys(from, to time.Time, groupBy string) []string {
	if to.Before(from) {
		return nil
	}
	var keys []string
	switch groupBy {
	case GroupByDay:
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			keys = append(keys, PeriodKey(d, groupBy))
		}
	case GroupByMonth:
		y, m := from.Year(), int(from.Month())
		for !time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).After(to) {
			keys = append(keys, PeriodKey(time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC), groupBy))
			m++
			if m > 12 {
				m, y = 1, y+1
			}
		}
	default:
		for y := from.Year(); y <= to.Year(); y++ {
			keys = append(keys, PeriodKey(time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC), groupBy))
		}
	}
	return keys
}

// sqlPeriodFormat is the MySQL DATE_FORMAT pattern matching PeriodKey.
func sqlPeriodFormat(groupBy string) string {
	switch groupBy {
	case GroupByDay:
		return "%Y-%m-%d"
	case GroupByMonth:
		return "%Y-%m"
	default:
		return "%Y"
	}
}

// ValidGroupBy reports whether g is a supported granularity.
func ValidGroupBy(g string) bool {
	return g == GroupByDay || g == GroupByMonth || g == GroupByYear
}

// ValidMode reports whether m is a supported aggregation mode.
func ValidMode(m string) bool {
	return m == ModeAccrual || m == ModeCash || m == ModeBoth
}

func dateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
