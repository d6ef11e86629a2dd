package service

import (
	"testing"
	"time"

	"pausal/config"
	"pausal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setLimitConfig(t *testing.T, pausal, vat, warn float64) {
	old := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Finance: config.FinanceConfig{
			Currency:            "RSD",
			IncomeLimitPausal:   pausal,
			IncomeLimitVAT:      vat,
			LimitWarningPercent: warn,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = old })
}

func TestAccountsReceivable_AgingSplit(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	today := dateOnly(time.Now())
	old := today.AddDate(0, 0, -60)
	recent := today.AddDate(0, 0, -5)

	mock.ExpectQuery("SELECT \\* FROM `income`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "invoice_number", "client_name", "issued_date", "amount", "status"}).
			AddRow(1, "2025-0001", "Acme", old, "1000.00", "issued").
			AddRow(2, "2025-0002", "Beta", recent, "250.00", "issued"))

	res, err := AccountsReceivable()
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, 60, res.Items[0].DaysOutstanding)
	assert.Equal(t, 5, res.Items[1].DaysOutstanding)
	assert.Equal(t, "1250", res.Totals.Total.String())
	// Only the 60-day invoice has crossed the 30-day threshold.
	assert.Equal(t, "1000", res.Totals.Overdue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIncomeLimitStatus_WarningAndExceeded(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setLimitConfig(t, 6000000, 8000000, 0.9)

	// Calendar-year income sits between the 90% warning line and the limit;
	// trailing twelve months are over the VAT limit.
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `income`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("5500000"))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `income`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("8100000"))

	status, err := GetIncomeLimitStatus(2025)
	require.NoError(t, err)

	assert.True(t, status.WarningPausal)
	assert.False(t, status.ExceededPausal)
	assert.True(t, status.WarningVAT)
	assert.True(t, status.ExceededVAT)
	assert.Equal(t, "91.67", status.PercentPausal.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIncomeLimitStatus_ExactWarningThreshold(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	setLimitConfig(t, 6000000, 8000000, 0.9)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `income`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("5400000"))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `income`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

	status, err := GetIncomeLimitStatus(2025)
	require.NoError(t, err)

	assert.True(t, status.WarningPausal)
	assert.False(t, status.ExceededPausal)
	assert.False(t, status.WarningVAT)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpcomingPayments_PaidPairsSortLast(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	today := dateOnly(time.Now())
	// 0=Monday .. 6=Sunday, so today's occurrence always falls in range.
	weekday := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -30)

	mock.ExpectQuery("SELECT \\* FROM `planned_expenses`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "amount", "currency", "period", "payment_day_of_week", "start_date", "reminder_days", "is_active"}).
			AddRow(1, "Rent", "500.00", "RSD", models.PeriodWeekly, weekday, start, 3, true).
			AddRow(2, "Internet", "40.00", "RSD", models.PeriodWeekly, weekday, start, 3, true))
	mock.ExpectQuery("SELECT \\* FROM `planned_expense_payments`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "planned_expense_id", "due_date", "paid_date"}).
			AddRow(10, 1, today, today))

	list, err := UpcomingPayments(5)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, uint(2), list[0].PlannedExpenseID)
	assert.False(t, list[0].IsPaid)
	assert.Equal(t, uint(1), list[1].PlannedExpenseID)
	assert.True(t, list[1].IsPaid)
	assert.Equal(t, decimal.RequireFromString("500").String(), list[1].Amount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
