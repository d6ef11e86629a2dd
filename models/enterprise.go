package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enterprise is the sole proprietor's profile. A single row is expected;
// the opening cash balance anchors the cash flow ledger.
type Enterprise struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	Name               string          `json:"name" gorm:"size:200;not null"`
	Address            string          `json:"address" gorm:"size:500"`
	TaxID              string          `json:"tax_id" gorm:"size:20"`
	RegistryNumber     string          `json:"registry_number" gorm:"size:20"`
	BankName           string          `json:"bank_name" gorm:"size:100"`
	BankAccount        string          `json:"bank_account" gorm:"size:50"`
	BankSWIFT          string          `json:"bank_swift" gorm:"size:20"`
	MainActivityCode   string          `json:"main_activity_code" gorm:"size:20"`
	OpeningCashBalance decimal.Decimal `json:"opening_cash_balance" gorm:"type:decimal(14,2);default:0"`
	OpeningCashDate    *time.Time      `json:"opening_cash_date" gorm:"type:date"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (Enterprise) TableName() string {
	return "enterprise"
}
