package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransaction types and sources.
const (
	CashTransactionTypeIncome  = "income"
	CashTransactionTypeExpense = "expense"

	CashTransactionSourceInvoice = "invoice"
	CashTransactionSourceExpense = "expense"
)

// CashTransaction is the authoritative ledger for cash-basis metrics.
// A row is created when an income is marked paid and removed when the mark
// is withdrawn; cash revenue is always summed from here, never from the
// income records directly.
type CashTransaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Type        string          `json:"type" gorm:"size:20;not null;index"`
	Source      string          `json:"source" gorm:"size:30;not null"`
	ReferenceID uint            `json:"reference_id" gorm:"not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Date        time.Time       `json:"date" gorm:"type:date;not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (CashTransaction) TableName() string {
	return "cash_transactions"
}
