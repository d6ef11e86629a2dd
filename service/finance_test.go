package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumRows(pairs ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"period", "total"})
	for i := 0; i+1 < len(pairs); i += 2 {
		rows.AddRow(pairs[i], pairs[i+1])
	}
	return rows
}

func TestFinanceSummary_MonthlyBothBases(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// One invoice for 1000, issued and paid in February; one expense of 300
	// paid in February. January and March stay zero-valued.
	mock.ExpectQuery("SELECT DATE_FORMAT\\(issued_date.* FROM `income`").
		WillReturnRows(sumRows("2025-02", "1000"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(date.* FROM `expenses`").
		WillReturnRows(sumRows("2025-02", "300"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(cash_transactions.date.* FROM `cash_transactions`").
		WillReturnRows(sumRows("2025-02", "1000"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(paid_date.* FROM `expenses`").
		WillReturnRows(sumRows("2025-02", "300"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(paid_date.* FROM `expenses`").
		WillReturnRows(sumRows())

	res, err := FinanceSummary(date(2025, 1, 1), date(2025, 3, 31), GroupByMonth, ModeBoth, SummaryFilters{})
	require.NoError(t, err)
	require.Len(t, res.Series, 3)

	jan, feb, mar := res.Series[0], res.Series[1], res.Series[2]
	assert.Equal(t, "2025-01", jan.Period)
	assert.True(t, jan.RevenueAccrual.IsZero())
	assert.True(t, jan.NetProfitCash.IsZero())

	assert.Equal(t, "2025-02", feb.Period)
	assert.True(t, feb.RevenueAccrual.Equal(decimal.NewFromInt(1000)))
	assert.True(t, feb.RevenueCash.Equal(decimal.NewFromInt(1000)))
	assert.True(t, feb.ExpenseAccrual.Equal(decimal.NewFromInt(300)))
	assert.True(t, feb.ExpenseCash.Equal(decimal.NewFromInt(300)))
	assert.True(t, feb.NetProfitAccrual.Equal(decimal.NewFromInt(700)))
	assert.True(t, feb.NetProfitCash.Equal(decimal.NewFromInt(700)))

	assert.Equal(t, "2025-03", mar.Period)
	assert.True(t, mar.ExpenseAccrual.IsZero())

	assert.True(t, res.Totals.RevenueAccrual.Equal(decimal.NewFromInt(1000)))
	assert.True(t, res.Totals.NetProfitCash.Equal(decimal.NewFromInt(700)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceSummary_AccrualOnlySkipsCashQueries(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DATE_FORMAT\\(issued_date.* FROM `income`").
		WillReturnRows(sumRows("2025", "5000"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(date.* FROM `expenses`").
		WillReturnRows(sumRows())

	res, err := FinanceSummary(date(2025, 1, 1), date(2025, 12, 31), GroupByYear, ModeAccrual, SummaryFilters{})
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	assert.True(t, res.Series[0].RevenueAccrual.Equal(decimal.NewFromInt(5000)))
	assert.True(t, res.Series[0].RevenueCash.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceSummary_InvertedRange(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	res, err := FinanceSummary(date(2025, 3, 1), date(2025, 1, 1), GroupByMonth, ModeBoth, SummaryFilters{})
	require.NoError(t, err)
	assert.Empty(t, res.Series)
	assert.True(t, res.Totals.RevenueAccrual.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceSummary_CashRevenueJoinsIncomeWhenFiltered(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	clientID := uint(7)
	mock.ExpectQuery("SELECT DATE_FORMAT\\(cash_transactions.date.*JOIN income ON income.id = cash_transactions.reference_id.*").
		WillReturnRows(sumRows("2025-02", "400"))
	mock.ExpectQuery("SELECT DATE_FORMAT\\(paid_date.* FROM `expenses`").
		WillReturnRows(sumRows())
	mock.ExpectQuery("SELECT DATE_FORMAT\\(paid_date.* FROM `expenses`").
		WillReturnRows(sumRows())

	res, err := FinanceSummary(date(2025, 2, 1), date(2025, 2, 28), GroupByMonth, ModeCash,
		SummaryFilters{ClientID: &clientID})
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	assert.True(t, res.Series[0].RevenueCash.Equal(decimal.NewFromInt(400)))
	require.NoError(t, mock.ExpectationsWereMet())
}
