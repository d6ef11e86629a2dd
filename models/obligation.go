package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment type codes of the fixed statutory catalog.
const (
	PaymentTypeTax          = "tax"
	PaymentTypePension      = "pio"
	PaymentTypeHealth       = "health"
	PaymentTypeUnemployment = "unemployment"
)

// PaymentType is one entry of the fixed statutory contribution catalog.
type PaymentType struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Code      string `json:"code" gorm:"size:20;uniqueIndex;not null"`
	NameSR    string `json:"name_sr" gorm:"size:100;not null"`
	NameRU    string `json:"name_ru" gorm:"size:100"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

func (PaymentType) TableName() string {
	return "payment_types"
}

// YearDecision carries the tax office decision for one (year, payment type):
// the monthly advance amount and the payment routing data. A provisional
// decision is the previous year's carried over until the final one arrives;
// at most one non-provisional decision may exist per (year, type).
type YearDecision struct {
	ID                  uint             `json:"id" gorm:"primaryKey"`
	Year                int              `json:"year" gorm:"not null;index"`
	PaymentTypeID       uint             `json:"payment_type_id" gorm:"not null;index"`
	PeriodStart         time.Time        `json:"period_start" gorm:"type:date;not null"`
	PeriodEnd           time.Time        `json:"period_end" gorm:"type:date;not null"`
	MonthlyAmount       decimal.Decimal  `json:"monthly_amount" gorm:"type:decimal(14,2);not null"`
	BaseAmount          *decimal.Decimal `json:"base_amount" gorm:"type:decimal(14,2)"`
	RatePercent         *decimal.Decimal `json:"rate_percent" gorm:"type:decimal(6,3)"`
	RecipientName       string           `json:"recipient_name" gorm:"size:200"`
	RecipientAccount    string           `json:"recipient_account" gorm:"size:30;not null"`
	PaymentCode         string           `json:"payment_code" gorm:"size:10;default:253"`
	Model               string           `json:"model" gorm:"size:10;default:97"`
	ReferenceNumber     string           `json:"reference_number" gorm:"size:50;not null"`
	ReferenceNumberNext string           `json:"reference_number_next" gorm:"size:50"`
	PaymentPurpose      string           `json:"payment_purpose" gorm:"size:200;not null"` // template, YYYY substituted
	Currency            string           `json:"currency" gorm:"size:5;default:RSD"`
	IsProvisional       bool             `json:"is_provisional" gorm:"default:false"`
	IsActive            bool             `json:"is_active" gorm:"default:true"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	PaymentType *PaymentType `json:"-" gorm:"foreignKey:PaymentTypeID"`
}

func (YearDecision) TableName() string {
	return "year_decisions"
}

// MonthlyObligation status values.
const (
	ObligationStatusUnpaid  = "unpaid"
	ObligationStatusPaid    = "paid"
	ObligationStatusOverdue = "overdue"
)

// Obligation payment methods.
const (
	ObligationPaymentManual     = "manual"
	ObligationPaymentBankImport = "bank_import"
)

// MonthlyObligation is one statutory liability: (year, month, payment type),
// deadline on the 15th of the following month. The unique index makes
// concurrent calendar builds safe without external locking.
type MonthlyObligation struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Year             int             `json:"year" gorm:"not null;uniqueIndex:uq_obligation_period"`
	Month            int             `json:"month" gorm:"not null;uniqueIndex:uq_obligation_period"`
	PaymentTypeID    uint            `json:"payment_type_id" gorm:"not null;uniqueIndex:uq_obligation_period"`
	DecisionID       *uint           `json:"decision_id"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Deadline         time.Time       `json:"deadline" gorm:"type:date;not null;index"`
	Status           string          `json:"status" gorm:"size:20;not null;default:unpaid"`
	PaidDate         *time.Time      `json:"paid_date" gorm:"type:date"`
	PaymentReference string          `json:"payment_reference" gorm:"size:100;index"`
	PaymentMethod    string          `json:"payment_method" gorm:"size:20;default:manual"`
	ExpenseID        *uint           `json:"expense_id"` // expense created when the obligation was paid
	Note             string          `json:"note" gorm:"size:200"`
	CreatedAt        time.Time       `json:"created_at"`

	PaymentType *PaymentType `json:"-" gorm:"foreignKey:PaymentTypeID"`
}

func (MonthlyObligation) TableName() string {
	return "monthly_obligations"
}

// IsOpen reports whether the obligation still awaits payment.
func (o *MonthlyObligation) IsOpen() bool {
	return o.Status == ObligationStatusUnpaid || o.Status == ObligationStatusOverdue
}
