package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income status values. Transitions: issued -> paid -> (cancelled).
const (
	IncomeStatusIssued    = "issued"
	IncomeStatusPaid      = "paid"
	IncomeStatusCancelled = "cancelled"
)

// Income is an entry of the income book (KPO). Invoice numbers are unique
// per invoice year; marking an income paid produces a CashTransaction.
type Income struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	IssuedDate    time.Time       `json:"issued_date" gorm:"type:date;not null"`
	InvoiceNumber string          `json:"invoice_number" gorm:"size:50;not null;uniqueIndex:uq_income_invoice_per_year"`
	InvoiceYear   int             `json:"invoice_year" gorm:"uniqueIndex:uq_income_invoice_per_year"`
	ClientID      *uint           `json:"client_id" gorm:"index"`
	ClientName    string          `json:"client_name" gorm:"size:200"`
	Description   string          `json:"description" gorm:"size:500"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Currency      string          `json:"currency" gorm:"size:5;default:RSD"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate" gorm:"type:decimal(12,6);default:1"`
	Status        string          `json:"status" gorm:"size:20;not null;default:issued"`
	PaidDate      *time.Time      `json:"paid_date" gorm:"type:date"`
	ProjectID     *uint           `json:"project_id" gorm:"index"`
	ContractID    *uint           `json:"contract_id" gorm:"index"`
	IncomeType    string          `json:"income_type" gorm:"size:20"` // advance | intermediate | final | other
	BankReference string          `json:"bank_reference" gorm:"size:100;index"`
	Note          string          `json:"note" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Client *Client `json:"-" gorm:"foreignKey:ClientID"`
}

func (Income) TableName() string {
	return "income"
}
