package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project status values.
const (
	ProjectStatusLead      = "lead"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// Project groups incomes, expenses and contracts. The code is allocated from
// the per-year project sequence in the PR-YYYY-NNNN format.
type Project struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	Code           string           `json:"code" gorm:"size:50;uniqueIndex:uq_projects_code"`
	Name           string           `json:"name" gorm:"size:200;not null"`
	ClientID       *uint            `json:"client_id"`
	ContractID     *uint            `json:"contract_id"`
	Status         string           `json:"status" gorm:"size:20;not null;default:active"`
	StartDate      *time.Time       `json:"start_date" gorm:"type:date"`
	EndDate        *time.Time       `json:"end_date" gorm:"type:date"`
	PlannedIncome  *decimal.Decimal `json:"planned_income" gorm:"type:decimal(14,2)"`
	PlannedExpense *decimal.Decimal `json:"planned_expense" gorm:"type:decimal(14,2)"`
	Notes          string           `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
