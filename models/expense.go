package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense status values.
const (
	ExpenseStatusPlanned  = "planned"
	ExpenseStatusPaid     = "paid"
	ExpenseStatusReversed = "reversed"
)

// Expense source values.
const (
	ExpenseSourceManual     = "manual"
	ExpenseSourcePlanned    = "planned"
	ExpenseSourceObligation = "obligation"
	ExpenseSourceBankImport = "bank_import"
)

// Expense is a cost record. Expenses with financial meaning are never hard
// deleted: a reversal record with the negated amount is appended instead and
// both records reference each other. An expense is reversed at most once.
type Expense struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Date              time.Time       `json:"date" gorm:"type:date;not null"`
	Description       string          `json:"description" gorm:"size:500;not null"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Currency          string          `json:"currency" gorm:"size:5;default:RSD"`
	Category          string          `json:"category" gorm:"size:50"` // materials, services, tax, rent, ...
	BankReference     string          `json:"bank_reference" gorm:"size:100;index"`
	PaidDate          *time.Time      `json:"paid_date" gorm:"type:date"`
	Status            string          `json:"status" gorm:"size:20;not null;default:paid"`
	IsTaxRelated      bool            `json:"is_tax_related" gorm:"not null;default:false"`
	Source            string          `json:"source" gorm:"size:20;not null;default:manual"`
	ReversedExpenseID *uint           `json:"reversed_expense_id"` // id of the reversal record, set on the original
	ReversalOfID      *uint           `json:"reversal_of_id"`      // id of the reversed original, set on the reversal
	ProjectID         *uint           `json:"project_id" gorm:"index"`
	Note              string          `json:"note" gorm:"type:text"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
