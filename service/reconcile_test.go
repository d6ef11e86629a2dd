package service

import (
	"testing"

	"pausal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obligation(id uint, amount float64, deadline int) models.MonthlyObligation {
	return models.MonthlyObligation{
		ID:       id,
		Amount:   decimal.NewFromFloat(amount),
		Deadline: date(2025, 3, deadline),
		Status:   models.ObligationStatusUnpaid,
	}
}

func TestFilterCandidates_Tolerance(t *testing.T) {
	tolerance := decimal.NewFromFloat(0.5)
	obs := []models.MonthlyObligation{
		obligation(1, 9000.00, 15),
		obligation(2, 9000.50, 15), // exactly at the tolerance edge
		obligation(3, 9000.51, 15),
		obligation(4, 8999.50, 15),
	}

	got := filterCandidates(obs, decimal.NewFromFloat(9000.00), tolerance)
	require.Len(t, got, 3)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
	assert.Equal(t, uint(4), got[2].ID)
}

func TestPickCandidate(t *testing.T) {
	txDate := date(2025, 3, 20)

	assert.Nil(t, pickCandidate(nil, txDate))

	single := []models.MonthlyObligation{obligation(1, 9000, 15)}
	got := pickCandidate(single, txDate)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}

func TestPickCandidate_TieGoesToClosestDeadline(t *testing.T) {
	txDate := date(2025, 3, 20)
	// Deadlines 10 and 40 days away from the transaction date.
	far := models.MonthlyObligation{ID: 1, Amount: decimal.NewFromInt(9000),
		Deadline: date(2025, 4, 29), Status: models.ObligationStatusUnpaid}
	near := models.MonthlyObligation{ID: 2, Amount: decimal.NewFromInt(9000),
		Deadline: date(2025, 3, 30), Status: models.ObligationStatusUnpaid}

	got := pickCandidate([]models.MonthlyObligation{far, near}, txDate)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.ID)
}

func TestDeadlineDistance(t *testing.T) {
	txDate := date(2025, 3, 20)
	assert.Equal(t, 5, deadlineDistance(date(2025, 3, 25), txDate))
	assert.Equal(t, 5, deadlineDistance(date(2025, 3, 15), txDate))
	assert.Equal(t, 0, deadlineDistance(txDate, txDate))
}

func TestApplyBankTransactions_MalformedLinesCollected(t *testing.T) {
	items := []BankApplyItem{
		{Type: "transfer", Tx: BankTransaction{Date: "2025-03-01", Amount: decimal.NewFromInt(100)}},
		{Type: "income", Tx: BankTransaction{Date: "not-a-date", Amount: decimal.NewFromInt(100)}},
		{Type: "expense", Tx: BankTransaction{Date: "2025-03-01", Amount: decimal.Zero}},
	}

	res, err := ApplyBankTransactions(items)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CreatedIncome)
	assert.Equal(t, 0, res.CreatedExpense)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "line 1")
	assert.Contains(t, res.Errors[1], "line 2")
	assert.Contains(t, res.Errors[2], "line 3")
}
