package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodKey(t *testing.T) {
	d := date(2025, 2, 15)
	assert.Equal(t, "2025-02-15", PeriodKey(d, GroupByDay))
	assert.Equal(t, "2025-02", PeriodKey(d, GroupByMonth))
	assert.Equal(t, "2025", PeriodKey(d, GroupByYear))
}

func TestPeriodKeys_Month(t *testing.T) {
	keys := PeriodKeys(date(2024, 11, 10), date(2025, 2, 5), GroupByMonth)
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01", "2025-02"}, keys)
}

func TestPeriodKeys_Day(t *testing.T) {
	keys := PeriodKeys(date(2025, 2, 27), date(2025, 3, 2), GroupByDay)
	assert.Equal(t, []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}, keys)
}

func TestPeriodKeys_Year(t *testing.T) {
	keys := PeriodKeys(date(2023, 6, 1), date(2025, 1, 1), GroupByYear)
	assert.Equal(t, []string{"2023", "2024", "2025"}, keys)
}

func TestPeriodKeys_InvertedRange(t *testing.T) {
	assert.Nil(t, PeriodKeys(date(2025, 3, 1), date(2025, 1, 1), GroupByMonth))
}

func TestValidGroupByAndMode(t *testing.T) {
	assert.True(t, ValidGroupBy("day"))
	assert.True(t, ValidGroupBy("month"))
	assert.True(t, ValidGroupBy("year"))
	assert.False(t, ValidGroupBy("week"))

	assert.True(t, ValidMode("accrual"))
	assert.True(t, ValidMode("cash"))
	assert.True(t, ValidMode("both"))
	assert.False(t, ValidMode("tax"))
}
