package service

import (
	"testing"

	"pausal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineForMonth(t *testing.T) {
	assert.Equal(t, date(2025, 7, 15), DeadlineForMonth(2025, 6))
	assert.Equal(t, date(2025, 2, 15), DeadlineForMonth(2025, 1))
	// December rolls into January of the next year.
	assert.Equal(t, date(2026, 1, 15), DeadlineForMonth(2025, 12))
}

func TestPaymentPurposeWithYear(t *testing.T) {
	assert.Equal(t, "Porez za 2025. godinu",
		PaymentPurposeWithYear("Porez za YYYY. godinu", 2025))
	assert.Equal(t, "bez godine", PaymentPurposeWithYear("bez godine", 2025))
}

func TestResolveDecisions_FinalBeatsProvisional(t *testing.T) {
	provisional := models.YearDecision{ID: 1, PaymentTypeID: 3, IsProvisional: true,
		MonthlyAmount: decimal.NewFromInt(9000)}
	final := models.YearDecision{ID: 2, PaymentTypeID: 3, IsProvisional: false,
		MonthlyAmount: decimal.NewFromInt(9500)}

	resolved := ResolveDecisions([]models.YearDecision{provisional, final})
	require.Len(t, resolved, 1)
	assert.Equal(t, uint(2), resolved[3].ID)

	// Order of arrival makes no difference.
	resolved = ResolveDecisions([]models.YearDecision{final, provisional})
	assert.Equal(t, uint(2), resolved[3].ID)
}

func TestResolveDecisions_ProvisionalKeptAlone(t *testing.T) {
	provisional := models.YearDecision{ID: 5, PaymentTypeID: 1, IsProvisional: true}
	other := models.YearDecision{ID: 6, PaymentTypeID: 2}

	resolved := ResolveDecisions([]models.YearDecision{provisional, other})
	require.Len(t, resolved, 2)
	assert.Equal(t, uint(5), resolved[1].ID)
	assert.Equal(t, uint(6), resolved[2].ID)
}

func TestObligationStatus(t *testing.T) {
	today := date(2025, 3, 20)
	assert.Equal(t, models.ObligationStatusOverdue, obligationStatus(date(2025, 3, 15), today))
	assert.Equal(t, models.ObligationStatusUnpaid, obligationStatus(date(2025, 3, 20), today))
	assert.Equal(t, models.ObligationStatusUnpaid, obligationStatus(date(2025, 4, 15), today))
}

func TestSyncObligation_PaidNeverTouched(t *testing.T) {
	paid := date(2025, 2, 10)
	ob := models.MonthlyObligation{
		Status:   models.ObligationStatusPaid,
		Amount:   decimal.NewFromInt(9000),
		Deadline: date(2025, 2, 15),
		PaidDate: &paid,
	}
	dec := models.YearDecision{MonthlyAmount: decimal.NewFromInt(9500)}

	changed := syncObligation(&ob, dec, date(2025, 6, 1))
	assert.False(t, changed)
	assert.Equal(t, models.ObligationStatusPaid, ob.Status)
	assert.True(t, ob.Amount.Equal(decimal.NewFromInt(9000)))
}

func TestSyncObligation_AmountResyncAndOverdueFlip(t *testing.T) {
	ob := models.MonthlyObligation{
		Status:   models.ObligationStatusUnpaid,
		Amount:   decimal.NewFromInt(9000),
		Deadline: date(2025, 2, 15),
	}
	dec := models.YearDecision{MonthlyAmount: decimal.NewFromInt(9500)}

	changed := syncObligation(&ob, dec, date(2025, 3, 1))
	assert.True(t, changed)
	assert.Equal(t, models.ObligationStatusOverdue, ob.Status)
	assert.True(t, ob.Amount.Equal(decimal.NewFromInt(9500)))
}

func TestSyncObligation_NoChange(t *testing.T) {
	ob := models.MonthlyObligation{
		Status:   models.ObligationStatusUnpaid,
		Amount:   decimal.NewFromInt(9000),
		Deadline: date(2025, 4, 15),
	}
	dec := models.YearDecision{MonthlyAmount: decimal.NewFromInt(9000)}

	assert.False(t, syncObligation(&ob, dec, date(2025, 3, 1)))
	assert.Equal(t, models.ObligationStatusUnpaid, ob.Status)
}
