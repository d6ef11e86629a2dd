package service

import (
	"fmt"
	"time"

	"pausal/config"
	"pausal/database"
	"pausal/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankTransaction is one structured statement line. Parsing the statement
// file itself is an external collaborator's job; this layer only consumes
// the parsed records.
type BankTransaction struct {
	Date         string          `json:"date" binding:"required"`
	Reference    string          `json:"reference"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
}

// BankApplyItem is one line of an import batch, classified by the caller.
type BankApplyItem struct {
	Type          string          `json:"type" binding:"required"` // income | expense
	Tx            BankTransaction `json:"tx" binding:"required"`
	ClientID      *uint           `json:"client_id"`
	InvoiceNumber string          `json:"invoice_number"`
}

// BankApplyResult reports the per-item outcome of an import batch.
type BankApplyResult struct {
	CreatedIncome  int      `json:"created_income"`
	CreatedExpense int      `json:"created_expense"`
	Matched        int      `json:"matched"`
	Errors         []string `json:"errors"`
}

// ApplyBankTransactions creates incomes and expenses from an import batch.
// Every item is processed independently: a malformed or duplicate line lands
// in the error list and never aborts the batch. Expense lines are reconciled
// against open obligations; a successful match settles the obligation and
// retags the expense as a tax payment.
func ApplyBankTransactions(items []BankApplyItem) (*BankApplyResult, error) {
	res := &BankApplyResult{Errors: []string{}}

	for i, item := range items {
		line := i + 1
		if item.Type != "income" && item.Type != "expense" {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid type %q", line, item.Type))
			continue
		}
		d, err := time.ParseInLocation(DateLayout, item.Tx.Date, time.UTC)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid date %q", line, item.Tx.Date))
			continue
		}
		if !item.Tx.Amount.IsPositive() {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid amount", line))
			continue
		}

		if msg := duplicateReferenceError(item.Type, item.Tx.Reference); msg != "" {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %s", line, msg))
			continue
		}

		if item.Type == "income" {
			if err := importIncome(item, d); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			res.CreatedIncome++
			continue
		}

		matched, err := importExpense(item, d)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		res.CreatedExpense++
		if matched {
			res.Matched++
		}
	}

	return res, nil
}

// duplicateReferenceError rejects a reference already present on a stored
// income or expense, or already recorded as an obligation payment.
func duplicateReferenceError(txType, ref string) string {
	if ref == "" {
		return ""
	}
	if txType == "income" {
		var count int64
		database.DB.Model(&models.Income{}).Where("bank_reference = ?", ref).Count(&count)
		if count > 0 {
			return fmt.Sprintf("income with reference %s already imported", ref)
		}
		return ""
	}
	var count int64
	database.DB.Model(&models.Expense{}).Where("bank_reference = ?", ref).Count(&count)
	if count > 0 {
		return fmt.Sprintf("expense with reference %s already imported", ref)
	}
	database.DB.Model(&models.MonthlyObligation{}).Where("payment_reference = ?", ref).Count(&count)
	if count > 0 {
		return fmt.Sprintf("reference %s already recorded as an obligation payment", ref)
	}
	return ""
}

func importIncome(item BankApplyItem, d time.Time) error {
	description := truncate(item.Tx.Description, 500)
	if description == "" {
		description = "Bank: " + truncate(item.Tx.Counterparty, 200)
	}
	invoiceNumber := item.InvoiceNumber
	if invoiceNumber == "" {
		n, err := NextInvoiceNumber(d.Year())
		if err != nil {
			return err
		}
		invoiceNumber = n
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		paid := dateOnly(d)
		income := models.Income{
			IssuedDate:    paid,
			InvoiceNumber: invoiceNumber,
			InvoiceYear:   d.Year(),
			ClientID:      item.ClientID,
			ClientName:    truncate(item.Tx.Counterparty, 200),
			Description:   description,
			Amount:        item.Tx.Amount,
			BankReference: item.Tx.Reference,
			Status:        models.IncomeStatusPaid,
			PaidDate:      &paid,
		}
		if err := tx.Create(&income).Error; err != nil {
			return err
		}
		ct := models.CashTransaction{
			Type:        models.CashTransactionTypeIncome,
			Source:      models.CashTransactionSourceInvoice,
			ReferenceID: income.ID,
			Amount:      income.Amount,
			Date:        paid,
		}
		return tx.Create(&ct).Error
	})
}

func importExpense(item BankApplyItem, d time.Time) (bool, error) {
	description := truncate(item.Tx.Description, 500)
	if description == "" {
		description = "Bank: " + truncate(item.Tx.Counterparty, 200)
	}
	paid := dateOnly(d)
	expense := models.Expense{
		Date:          paid,
		Description:   description,
		Amount:        item.Tx.Amount,
		BankReference: item.Tx.Reference,
		PaidDate:      &paid,
		Status:        models.ExpenseStatusPaid,
		Source:        models.ExpenseSourceBankImport,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		return false, err
	}

	ob, err := matchOpenObligation(paid, item.Tx.Amount)
	if err != nil || ob == nil {
		return false, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		ob.Status = models.ObligationStatusPaid
		ob.PaidDate = &paid
		ob.PaymentReference = item.Tx.Reference
		ob.PaymentMethod = models.ObligationPaymentBankImport
		ob.ExpenseID = &expense.ID
		if err := tx.Save(ob).Error; err != nil {
			return err
		}
		expense.Category = "tax"
		expense.IsTaxRelated = true
		expense.Source = models.ExpenseSourceObligation
		return tx.Save(&expense).Error
	})
	if err != nil {
		return false, err
	}
	log.Info().
		Uint("obligation_id", ob.ID).
		Uint("expense_id", expense.ID).
		Str("reference", item.Tx.Reference).
		Msg("bank transaction matched to obligation")
	return true, nil
}

// matchOpenObligation searches open obligations whose deadline lies within
// the configured window of the transaction date and whose amount is within
// the configured tolerance.
func matchOpenObligation(txDate time.Time, amount decimal.Decimal) (*models.MonthlyObligation, error) {
	policy := config.GetConfig().Finance.Reconcile
	windowDays := policy.DeadlineWindowDays
	dateMin := txDate.AddDate(0, 0, -windowDays)
	dateMax := txDate.AddDate(0, 0, windowDays)

	var open []models.MonthlyObligation
	err := database.DB.
		Where("status IN ?", []string{models.ObligationStatusUnpaid, models.ObligationStatusOverdue}).
		Where("deadline BETWEEN ? AND ?", dateMin, dateMax).
		Find(&open).Error
	if err != nil {
		return nil, err
	}

	candidates := filterCandidates(open, amount, policy.AmountToleranceDecimal())
	return pickCandidate(candidates, txDate), nil
}

// filterCandidates keeps obligations within the amount tolerance.
func filterCandidates(obs []models.MonthlyObligation, amount, tolerance decimal.Decimal) []models.MonthlyObligation {
	var out []models.MonthlyObligation
	for _, ob := range obs {
		if ob.Amount.Sub(amount).Abs().LessThanOrEqual(tolerance) {
			out = append(out, ob)
		}
	}
	return out
}

// pickCandidate resolves the match: a single candidate wins outright, a tie
// goes to the obligation whose deadline is chronologically closest to the
// transaction date.
func pickCandidate(candidates []models.MonthlyObligation, txDate time.Time) *models.MonthlyObligation {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return &candidates[0]
	}
	best := 0
	bestDist := deadlineDistance(candidates[0].Deadline, txDate)
	for i := 1; i < len(candidates); i++ {
		if dist := deadlineDistance(candidates[i].Deadline, txDate); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return &candidates[best]
}

func deadlineDistance(deadline, txDate time.Time) int {
	days := int(dateOnly(deadline).Sub(dateOnly(txDate)).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
