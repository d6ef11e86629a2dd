package service

import (
	"time"

	"pausal/models"

	"github.com/shopspring/decimal"
)

// lookaheadYears caps implicit recurrence generation when a template has no
// end date, guaranteeing termination.
const lookaheadYears = 2

// maxWindowOccurrences bounds occurrence expansion inside a window; a weekly
// cadence over a two-year window stays under it.
const maxWindowOccurrences = 120

// clampPaymentDay confines a configured day of month to [1, 28] so that a
// monthly or quarterly occurrence exists in every calendar month.
func clampPaymentDay(day *int) int {
	d := 1
	if day != nil {
		d = *day
	}
	if d < 1 {
		d = 1
	}
	if d > 28 {
		d = 28
	}
	return d
}

// monthDay places day in (year, month), falling back to the month's last day.
func monthDay(year int, month time.Month, day int) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NextPaymentDates generates up to limit future occurrence dates of a
// recurring expense, all >= fromDate. An inactive template, or one starting
// after fromDate, yields nothing. Without an explicit end date generation is
// capped two years ahead.
func NextPaymentDates(pe models.PlannedExpense, fromDate time.Time, limit int) []time.Time {
	var result []time.Time
	fromDate = dateOnly(fromDate)
	start := dateOnly(pe.StartDate)
	if !pe.IsActive || start.After(fromDate) {
		return result
	}

	effectiveEnd := time.Date(fromDate.Year()+lookaheadYears, 12, 31, 0, 0, 0, 0, time.UTC)
	if pe.EndDate != nil {
		effectiveEnd = dateOnly(*pe.EndDate)
	}

	switch pe.Period {
	case models.PeriodWeekly:
		d := start
		for !d.After(fromDate) {
			d = d.AddDate(0, 0, 7)
		}
		for len(result) < limit && !d.After(effectiveEnd) {
			result = append(result, d)
			d = d.AddDate(0, 0, 7)
		}

	case models.PeriodMonthly:
		day := clampPaymentDay(pe.PaymentDay)
		y, m := start.Year(), start.Month()
		if monthDay(y, m, day).Before(start) {
			y, m = nextMonth(y, m, 1)
		}
		for len(result) < limit {
			d := monthDay(y, m, day)
			if !d.Before(fromDate) && !d.After(effectiveEnd) && !d.Before(start) {
				result = append(result, d)
			}
			y, m = nextMonth(y, m, 1)
			if y > fromDate.Year()+lookaheadYears {
				break
			}
		}

	case models.PeriodQuarterly:
		day := clampPaymentDay(pe.PaymentDay)
		y := start.Year()
		m := quarterStart(start.Month())
		d := monthDay(y, m, day)
		if d.Before(fromDate) {
			y, m = nextMonth(y, m, 3)
			d = monthDay(y, m, day)
		}
		for len(result) < limit {
			if !d.Before(fromDate) && !d.After(effectiveEnd) && !d.Before(start) {
				result = append(result, d)
			}
			y, m = nextMonth(y, m, 3)
			d = monthDay(y, m, day)
			if y > fromDate.Year()+lookaheadYears {
				break
			}
		}

	case models.PeriodYearly:
		// Yearly cadence takes its day from the template's own start date,
		// unclamped; February start dates fall back to the month's last day.
		day := start.Day()
		if pe.PaymentDay != nil && *pe.PaymentDay >= 1 {
			day = *pe.PaymentDay
		}
		m := start.Month()
		y := start.Year()
		d := monthDay(y, m, day)
		for d.Before(fromDate) {
			y++
			d = monthDay(y, m, day)
		}
		for len(result) < limit && !d.After(effectiveEnd) {
			result = append(result, d)
			y++
			d = monthDay(y, m, day)
			if y > fromDate.Year()+lookaheadYears {
				break
			}
		}
	}

	return result
}

// PaymentDatesInRange lists occurrence dates inside [rangeStart, rangeEnd],
// overdue ones included, bounded by the template's validity window.
func PaymentDatesInRange(pe models.PlannedExpense, rangeStart, rangeEnd time.Time, limit int) []time.Time {
	var result []time.Time
	rangeStart, rangeEnd = dateOnly(rangeStart), dateOnly(rangeEnd)
	start := dateOnly(pe.StartDate)
	if !pe.IsActive || start.After(rangeEnd) {
		return result
	}

	effectiveEnd := rangeEnd
	if pe.EndDate != nil {
		effectiveEnd = dateOnly(*pe.EndDate)
	}
	if effectiveEnd.Before(rangeStart) {
		return result
	}

	inWindow := func(d time.Time) bool {
		return !d.Before(rangeStart) && !d.After(rangeEnd) && !d.Before(start) && !d.After(effectiveEnd)
	}

	switch pe.Period {
	case models.PeriodWeekly:
		d := start
		for d.Before(rangeStart) {
			d = d.AddDate(0, 0, 7)
		}
		for len(result) < limit && !d.After(rangeEnd) && !d.After(effectiveEnd) {
			result = append(result, d)
			d = d.AddDate(0, 0, 7)
		}

	case models.PeriodMonthly:
		day := clampPaymentDay(pe.PaymentDay)
		y, m := rangeStart.Year(), rangeStart.Month()
		for len(result) < limit && !time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).After(rangeEnd) {
			d := monthDay(y, m, day)
			if inWindow(d) {
				result = append(result, d)
			}
			y, m = nextMonth(y, m, 1)
		}

	case models.PeriodQuarterly:
		day := clampPaymentDay(pe.PaymentDay)
		y := rangeStart.Year()
		m := quarterStart(rangeStart.Month())
		for len(result) < limit {
			d := monthDay(y, m, day)
			if inWindow(d) {
				result = append(result, d)
			}
			y, m = nextMonth(y, m, 3)
			if time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).After(rangeEnd) {
				break
			}
		}

	case models.PeriodYearly:
		day := start.Day()
		if pe.PaymentDay != nil && *pe.PaymentDay >= 1 {
			day = *pe.PaymentDay
		}
		m := start.Month()
		for y := rangeStart.Year(); y <= rangeEnd.Year() && len(result) < limit; y++ {
			d := monthDay(y, m, day)
			if inWindow(d) {
				result = append(result, d)
			}
		}
	}

	return result
}

// nextMonth advances (year, month) by step months.
func nextMonth(y int, m time.Month, step int) (int, time.Month) {
	n := int(m) + step
	for n > 12 {
		n -= 12
		y++
	}
	return y, time.Month(n)
}

// quarterStart returns the first month of the quarter containing m.
func quarterStart(m time.Month) time.Month {
	return time.Month((int(m)-1)/3*3 + 1)
}

// PaidOccurrence identifies one settled occurrence of a recurring expense.
type PaidOccurrence struct {
	PlannedExpenseID uint
	DueDate          string // ISO date
}

// OutstandingPlannedSum totals occurrences inside [rangeStart, rangeEnd]
// that have no payment mark.
func OutstandingPlannedSum(items []models.PlannedExpense, rangeStart, rangeEnd time.Time, paid map[PaidOccurrence]bool) decimal.Decimal {
	total := decimal.Zero
	for _, pe := range items {
		if !pe.IsActive {
			continue
		}
		for _, d := range PaymentDatesInRange(pe, rangeStart, rangeEnd, maxWindowOccurrences) {
			if !paid[PaidOccurrence{PlannedExpenseID: pe.ID, DueDate: d.Format(DateLayout)}] {
				total = total.Add(pe.Amount)
			}
		}
	}
	return total
}
