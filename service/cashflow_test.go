package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldCashFlow(t *testing.T) {
	series := []PeriodBucket{
		{Period: "2025-01", RevenueCash: decimal.NewFromInt(1000), ExpenseCash: decimal.NewFromInt(400)},
		{Period: "2025-02"},
		{Period: "2025-03", RevenueCash: decimal.NewFromInt(200), ExpenseCash: decimal.NewFromInt(900)},
	}

	rows := foldCashFlow(series, decimal.NewFromInt(500))
	require.Len(t, rows, 3)

	assert.True(t, rows[0].Opening.Equal(decimal.NewFromInt(500)))
	assert.True(t, rows[0].Closing.Equal(decimal.NewFromInt(1100)))

	// A period without movement carries the balance through unchanged.
	assert.True(t, rows[1].Opening.Equal(rows[0].Closing))
	assert.True(t, rows[1].Closing.Equal(rows[0].Closing))

	// The balance may go negative; the fold never clamps.
	assert.True(t, rows[2].Opening.Equal(decimal.NewFromInt(1100)))
	assert.True(t, rows[2].Closing.Equal(decimal.NewFromInt(400)))
}

func TestFoldCashFlow_Empty(t *testing.T) {
	rows := foldCashFlow(nil, decimal.NewFromInt(100))
	assert.Empty(t, rows)
}
