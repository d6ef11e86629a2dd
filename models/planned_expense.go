package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Planned expense cadence values.
const (
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// PlannedExpense is a recurring cost template: rent, internet, insurance.
// Occurrence dates are derived, not stored; a PlannedExpensePayment row marks
// a single occurrence as paid.
type PlannedExpense struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"size:200;not null"`
	Description      string          `json:"description" gorm:"size:500"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Currency         string          `json:"currency" gorm:"size:5;default:RSD"`
	Category         string          `json:"category" gorm:"size:50"` // rent, internet, phone, utilities, insurance, other
	Period           string          `json:"period" gorm:"size:20;default:monthly"`
	PaymentDay       *int            `json:"payment_day"`         // day of month for monthly/quarterly/yearly
	PaymentDayOfWeek *int            `json:"payment_day_of_week"` // 0=Monday..6=Sunday, weekly cadence
	StartDate        time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate          *time.Time      `json:"end_date" gorm:"type:date"`
	ReminderDays     int             `json:"reminder_days" gorm:"default:3"`
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	Note             string          `json:"note" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (PlannedExpense) TableName() string {
	return "planned_expenses"
}

// PlannedExpensePayment marks one occurrence (template, due date) as paid.
// Its absence means the occurrence is still outstanding.
type PlannedExpensePayment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	PlannedExpenseID uint      `json:"planned_expense_id" gorm:"not null;uniqueIndex:uq_planned_payment_due"`
	DueDate          time.Time `json:"due_date" gorm:"type:date;not null;uniqueIndex:uq_planned_payment_due"`
	PaidDate         time.Time `json:"paid_date" gorm:"type:date;not null"`
	ExpenseID        *uint     `json:"expense_id"`
	Note             string    `json:"note" gorm:"size:200"`
	CreatedAt        time.Time `json:"created_at"`
}

func (PlannedExpensePayment) TableName() string {
	return "planned_expense_payments"
}
