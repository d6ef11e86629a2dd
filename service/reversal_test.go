package service

import (
	"testing"

	"pausal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseExpense(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	paid := date(2025, 2, 20)
	expense := models.Expense{
		ID:          1,
		Date:        date(2025, 2, 18),
		Description: "Office supplies",
		Amount:      decimal.NewFromInt(300),
		Currency:    "RSD",
		Status:      models.ExpenseStatusPaid,
		PaidDate:    &paid,
	}

	reversal, err := ReverseExpense(&expense, nil, "entered twice", models.ExpenseSourceManual)
	require.NoError(t, err)
	assert.True(t, reversal.Amount.Equal(decimal.NewFromInt(-300)))
	assert.Equal(t, models.ExpenseStatusReversed, reversal.Status)
	require.NotNil(t, reversal.ReversalOfID)
	assert.Equal(t, uint(1), *reversal.ReversalOfID)
	assert.Contains(t, reversal.Description, "Reversal: Office supplies")
	assert.Contains(t, reversal.Description, "entered twice")
	// Without an explicit reverse date the original paid date is used.
	assert.Equal(t, paid, *reversal.PaidDate)

	require.NotNil(t, expense.ReversedExpenseID)
	assert.Equal(t, uint(2), *expense.ReversedExpenseID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReverseExpense_ExplicitDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expense := models.Expense{
		ID:          4,
		Date:        date(2025, 1, 10),
		Description: "Hosting",
		Amount:      decimal.NewFromInt(50),
		Status:      models.ExpenseStatusPaid,
	}
	rev := date(2025, 3, 1)

	reversal, err := ReverseExpense(&expense, &rev, "", models.ExpenseSourceObligation)
	require.NoError(t, err)
	assert.Equal(t, rev, reversal.Date)
	assert.Equal(t, models.ExpenseSourceObligation, reversal.Source)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReverseExpense_AlreadyReversed(t *testing.T) {
	revID := uint(2)
	expense := models.Expense{ID: 1, Status: models.ExpenseStatusPaid, ReversedExpenseID: &revID}
	_, err := ReverseExpense(&expense, nil, "", models.ExpenseSourceManual)
	assert.ErrorIs(t, err, ErrAlreadyReversed)

	reversed := models.Expense{ID: 2, Status: models.ExpenseStatusReversed}
	_, err = ReverseExpense(&reversed, nil, "", models.ExpenseSourceManual)
	assert.ErrorIs(t, err, ErrAlreadyReversed)
}
