package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract status values.
const (
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
	ContractStatusCancelled = "cancelled"
)

// Contract is an agreement with a client; incomes may reference it.
type Contract struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Number        string          `json:"number" gorm:"size:50;not null"`
	Date          time.Time       `json:"date" gorm:"type:date;not null"`
	ClientID      uint            `json:"client_id" gorm:"not null;index"`
	ProjectID     *uint           `json:"project_id" gorm:"index"`
	ContractType  string          `json:"contract_type" gorm:"size:50;default:service"` // service | supply | rent | commission
	Subject       string          `json:"subject" gorm:"size:500"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);default:0"`
	Currency      string          `json:"currency" gorm:"size:5;default:RSD"`
	ValidityStart *time.Time      `json:"validity_start" gorm:"type:date"`
	ValidityEnd   *time.Time      `json:"validity_end" gorm:"type:date"`
	Status        string          `json:"status" gorm:"size:20;default:active"`
	Note          string          `json:"note" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Items []ContractItem `json:"items,omitempty" gorm:"foreignKey:ContractID"`
}

func (Contract) TableName() string {
	return "contracts"
}

// ContractItem is a single service or goods line of a contract.
type ContractItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ContractID  uint            `json:"contract_id" gorm:"not null;index"`
	Description string          `json:"description" gorm:"size:500;not null"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);default:1"`
	Unit        string          `json:"unit" gorm:"size:20"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2);default:0"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);default:0"` // quantity * price
	SortOrder   int             `json:"sort_order" gorm:"default:0"`
}

func (ContractItem) TableName() string {
	return "contract_items"
}
