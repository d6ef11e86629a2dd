package service

import (
	"time"

	"pausal/database"
	"pausal/models"

	"gorm.io/gorm"
)

// ReverseExpense appends a reversal record for a paid expense: the negated
// amount, status reversed, and mutual back-references between both rows. The
// original row is never mutated beyond receiving the back-reference, and an
// expense can be reversed at most once.
func ReverseExpense(expense *models.Expense, reverseDate *time.Time, comment, source string) (*models.Expense, error) {
	if expense.Status == models.ExpenseStatusReversed || expense.ReversedExpenseID != nil {
		return nil, ErrAlreadyReversed
	}

	revDate := dateOnly(time.Now())
	if reverseDate != nil {
		revDate = dateOnly(*reverseDate)
	} else if expense.PaidDate != nil {
		revDate = dateOnly(*expense.PaidDate)
	}

	desc := "Reversal: " + truncate(expense.Description, 450)
	if comment != "" {
		desc += " (" + comment + ")"
	}
	desc = truncate(desc, 500)

	currency := expense.Currency
	if currency == "" {
		currency = "RSD"
	}
	reversal := models.Expense{
		Date:         revDate,
		Description:  desc,
		Amount:       expense.Amount.Neg(),
		Currency:     currency,
		Category:     expense.Category,
		PaidDate:     &revDate,
		Status:       models.ExpenseStatusReversed,
		Source:       source,
		IsTaxRelated: expense.IsTaxRelated,
		ReversalOfID: &expense.ID,
		Note:         comment,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reversal).Error; err != nil {
			return err
		}
		return tx.Model(expense).Update("reversed_expense_id", reversal.ID).Error
	})
	if err != nil {
		return nil, err
	}
	expense.ReversedExpenseID = &reversal.ID
	return &reversal, nil
}
