package service

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"pausal/database"
	"pausal/models"

	"gorm.io/gorm"
)

// DeadlineForMonth returns the statutory deadline for an obligation month:
// the 15th of the following month (December rolls into January).
func DeadlineForMonth(year, month int) time.Time {
	next := month + 1
	y := year
	if next > 12 {
		next = 1
		y = year + 1
	}
	return time.Date(y, time.Month(next), 15, 0, 0, 0, 0, time.UTC)
}

// PaymentPurposeWithYear substitutes the year into a purpose template.
func PaymentPurposeWithYear(template string, year int) string {
	return strings.ReplaceAll(template, "YYYY", strconv.Itoa(year))
}

// ResolveDecisions picks one decision per payment type, preferring the final
// one over a carried-over provisional when both exist.
func ResolveDecisions(decisions []models.YearDecision) map[uint]models.YearDecision {
	byType := make(map[uint]models.YearDecision)
	for _, d := range decisions {
		current, ok := byType[d.PaymentTypeID]
		if !ok || (current.IsProvisional && !d.IsProvisional) {
			byType[d.PaymentTypeID] = d
		}
	}
	return byType
}

// obligationStatus derives the initial status of a fresh obligation.
func obligationStatus(deadline, today time.Time) string {
	if deadline.Before(today) {
		return models.ObligationStatusOverdue
	}
	return models.ObligationStatusUnpaid
}

// syncObligation resyncs a non-paid obligation against its decision: the
// amount follows the decision and the status flips to overdue once the
// deadline has passed. Paid obligations are never touched. Returns whether
// anything changed.
func syncObligation(ob *models.MonthlyObligation, dec models.YearDecision, today time.Time) bool {
	if ob.Status == models.ObligationStatusPaid {
		return false
	}
	changed := false
	if ob.Status != models.ObligationStatusOverdue && ob.Deadline.Before(today) {
		ob.Status = models.ObligationStatusOverdue
		changed = true
	}
	if !ob.Amount.Equal(dec.MonthlyAmount) {
		ob.Amount = dec.MonthlyAmount
		changed = true
	}
	return changed
}

// EnsureObligations expands the year's active decisions into twelve monthly
// obligations per payment type, creating missing rows and resyncing open
// ones. Repeated and concurrent invocations are safe: the unique index on
// (year, month, payment type) makes a racing create fall back to the
// existing row. Types without an active decision are silently skipped.
func EnsureObligations(year int, paymentTypeCode string) ([]models.MonthlyObligation, error) {
	today := dateOnly(time.Now())

	q := database.DB.Where("year = ? AND is_active = ?", year, true)
	if paymentTypeCode != "" {
		q = q.Where("payment_type_id IN (?)",
			database.DB.Model(&models.PaymentType{}).Select("id").Where("code = ?", paymentTypeCode))
	}
	var decisions []models.YearDecision
	if err := q.Find(&decisions).Error; err != nil {
		return nil, err
	}

	result := make([]models.MonthlyObligation, 0, 12*len(decisions))
	for typeID, dec := range ResolveDecisions(decisions) {
		for month := 1; month <= 12; month++ {
			ob, err := ensureObligation(year, month, typeID, dec, today)
			if err != nil {
				return nil, err
			}
			result = append(result, *ob)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].PaymentTypeID < result[j].PaymentTypeID
	})
	return result, nil
}

func ensureObligation(year, month int, typeID uint, dec models.YearDecision, today time.Time) (*models.MonthlyObligation, error) {
	var ob models.MonthlyObligation
	err := database.DB.
		Where("year = ? AND month = ? AND payment_type_id = ?", year, month, typeID).
		First(&ob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		deadline := DeadlineForMonth(year, month)
		ob = models.MonthlyObligation{
			Year:          year,
			Month:         month,
			PaymentTypeID: typeID,
			DecisionID:    &dec.ID,
			Amount:        dec.MonthlyAmount,
			Deadline:      deadline,
			Status:        obligationStatus(deadline, today),
		}
		if err := database.DB.Create(&ob).Error; err != nil {
			// A concurrent request won the insert; load its row.
			if ferr := database.DB.
				Where("year = ? AND month = ? AND payment_type_id = ?", year, month, typeID).
				First(&ob).Error; ferr != nil {
				return nil, err
			}
		}
		return &ob, nil
	}
	if err != nil {
		return nil, err
	}
	if syncObligation(&ob, dec, today) {
		if err := database.DB.Model(&ob).
			Select("status", "amount").
			Updates(map[string]interface{}{"status": ob.Status, "amount": ob.Amount}).Error; err != nil {
			return nil, err
		}
	}
	return &ob, nil
}

// MarkObligationPaid settles an obligation manually: it records the paid
// date and reference and appends the matching tax-related expense.
func MarkObligationPaid(id uint, paidDate time.Time, reference string) (*models.MonthlyObligation, error) {
	var ob models.MonthlyObligation
	if err := database.DB.First(&ob, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var pt models.PaymentType
	desc := "Obligation payment"
	if err := database.DB.First(&pt, ob.PaymentTypeID).Error; err == nil {
		desc = pt.NameSR
	}
	paidDate = dateOnly(paidDate)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		expense := models.Expense{
			Date:         paidDate,
			Description:  desc + " " + formatMonth(ob.Month, ob.Year),
			Amount:       ob.Amount,
			Currency:     "RSD",
			Category:     "tax",
			PaidDate:     &paidDate,
			Status:       models.ExpenseStatusPaid,
			Source:       models.ExpenseSourceObligation,
			IsTaxRelated: true,
			Note:         reference,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		ob.Status = models.ObligationStatusPaid
		ob.PaidDate = &paidDate
		ob.PaymentReference = reference
		ob.PaymentMethod = models.ObligationPaymentManual
		ob.ExpenseID = &expense.ID
		return tx.Save(&ob).Error
	})
	if err != nil {
		return nil, err
	}
	return &ob, nil
}

// MarkObligationUnpaid withdraws a payment mark. The generated expense is
// reversed, never deleted, and the status is recomputed from the deadline.
func MarkObligationUnpaid(id uint) (*models.MonthlyObligation, error) {
	var ob models.MonthlyObligation
	if err := database.DB.First(&ob, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ob.ExpenseID != nil {
		var exp models.Expense
		if err := database.DB.First(&exp, *ob.ExpenseID).Error; err == nil {
			if exp.Status != models.ExpenseStatusReversed && exp.ReversedExpenseID == nil {
				if _, err := ReverseExpense(&exp, ob.PaidDate, "", models.ExpenseSourceObligation); err != nil {
					return nil, err
				}
			}
		}
		ob.ExpenseID = nil
	}

	ob.Status = obligationStatus(ob.Deadline, dateOnly(time.Now()))
	ob.PaidDate = nil
	ob.PaymentReference = ""
	ob.PaymentMethod = models.ObligationPaymentManual
	if err := database.DB.Save(&ob).Error; err != nil {
		return nil, err
	}
	return &ob, nil
}

func formatMonth(month, year int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("01/2006")
}
