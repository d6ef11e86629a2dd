package service

import (
	"sort"
	"time"

	"pausal/config"
	"pausal/database"
	"pausal/models"

	"github.com/shopspring/decimal"
)

// receivableOverdueDays is the aging threshold after which an open invoice
// counts toward the overdue total.
const receivableOverdueDays = 30

// ReceivableItem is one open invoice awaiting payment.
type ReceivableItem struct {
	IncomeID        uint            `json:"income_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	ClientName      string          `json:"client_name"`
	IssuedDate      string          `json:"issued_date"`
	Amount          decimal.Decimal `json:"amount"`
	DaysOutstanding int             `json:"days_outstanding"`
}

// ReceivablesResult lists open invoices oldest first with aging totals.
type ReceivablesResult struct {
	Items  []ReceivableItem `json:"items"`
	Totals struct {
		Total   decimal.Decimal `json:"ar_total"`
		Overdue decimal.Decimal `json:"ar_overdue"`
	} `json:"totals"`
}

// AccountsReceivable returns all non-cancelled incomes without a paid date.
func AccountsReceivable() (*ReceivablesResult, error) {
	today := dateOnly(time.Now())
	var incomes []models.Income
	err := database.DB.Preload("Client").
		Where("status <> ? AND paid_date IS NULL", models.IncomeStatusCancelled).
		Order("issued_date ASC").
		Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	res := &ReceivablesResult{Items: []ReceivableItem{}}
	res.Totals.Total = decimal.Zero
	res.Totals.Overdue = decimal.Zero
	for _, inc := range incomes {
		name := inc.ClientName
		if name == "" && inc.Client != nil {
			name = inc.Client.Name
		}
		days := int(today.Sub(dateOnly(inc.IssuedDate)).Hours() / 24)
		res.Items = append(res.Items, ReceivableItem{
			IncomeID:        inc.ID,
			InvoiceNumber:   inc.InvoiceNumber,
			ClientName:      name,
			IssuedDate:      inc.IssuedDate.Format(DateLayout),
			Amount:          inc.Amount.Round(2),
			DaysOutstanding: days,
		})
		res.Totals.Total = res.Totals.Total.Add(inc.Amount)
		if days > receivableOverdueDays {
			res.Totals.Overdue = res.Totals.Overdue.Add(inc.Amount)
		}
	}
	res.Totals.Total = res.Totals.Total.Round(2)
	res.Totals.Overdue = res.Totals.Overdue.Round(2)
	return res, nil
}

// ProjectProfit is the derived profitability of one project.
type ProjectProfit struct {
	ProjectID     *uint           `json:"project_id"`
	ProjectName   string          `json:"project_name"`
	Revenue       decimal.Decimal `json:"revenue"`
	Expenses      decimal.Decimal `json:"expenses"`
	Profit        decimal.Decimal `json:"profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ProjectProfitResult holds the per-project breakdown; Unassigned repeats the
// nil-project row for convenience.
type ProjectProfitResult struct {
	Range      DateRange       `json:"range"`
	Mode       string          `json:"mode"`
	ByProject  []ProjectProfit `json:"by_project"`
	Unassigned ProjectProfit   `json:"unassigned"`
}

// FinanceByProject computes revenue, expenses, profit and margin per project
// on the requested basis. Cash-basis revenue is summed from the cash ledger
// joined back to its originating invoice.
func FinanceByProject(from, to time.Time, mode string) (*ProjectProfitResult, error) {
	from, to = dateOnly(from), dateOnly(to)
	var projects []models.Project
	if err := database.DB.Order("name").Find(&projects).Error; err != nil {
		return nil, err
	}

	res := &ProjectProfitResult{
		Range:     DateRange{From: from.Format(DateLayout), To: to.Format(DateLayout)},
		Mode:      mode,
		ByProject: []ProjectProfit{},
	}

	ids := make([]*uint, 0, len(projects)+1)
	for i := range projects {
		ids = append(ids, &projects[i].ID)
	}
	ids = append(ids, nil) // incomes and expenses without a project

	for _, pid := range ids {
		name := "(no project)"
		if pid != nil {
			for _, p := range projects {
				if p.ID == *pid {
					name = p.Name
					break
				}
			}
		}

		revenue, err := projectRevenue(pid, from, to, mode)
		if err != nil {
			return nil, err
		}
		expenses, err := projectExpenses(pid, from, to, mode)
		if err != nil {
			return nil, err
		}

		profit := revenue.Sub(expenses)
		margin := decimal.Zero
		if revenue.IsPositive() {
			margin = profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(1)
		}
		row := ProjectProfit{
			ProjectID:     pid,
			ProjectName:   name,
			Revenue:       revenue.Round(2),
			Expenses:      expenses.Round(2),
			Profit:        profit.Round(2),
			MarginPercent: margin,
		}
		res.ByProject = append(res.ByProject, row)
		if pid == nil {
			res.Unassigned = row
		}
	}
	return res, nil
}

func projectRevenue(pid *uint, from, to time.Time, mode string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if mode == ModeCash {
		q := database.DB.Model(&models.CashTransaction{}).
			Joins("JOIN income ON income.id = cash_transactions.reference_id").
			Where("cash_transactions.type = ?", models.CashTransactionTypeIncome).
			Where("cash_transactions.source = ?", models.CashTransactionSourceInvoice).
			Where("cash_transactions.date BETWEEN ? AND ?", from, to)
		if pid == nil {
			q = q.Where("income.project_id IS NULL")
		} else {
			q = q.Where("income.project_id = ?", *pid)
		}
		err := q.Select("COALESCE(SUM(cash_transactions.amount), 0)").Scan(&total).Error
		return total, err
	}
	q := database.DB.Model(&models.Income{}).
		Where("status <> ?", models.IncomeStatusCancelled).
		Where("issued_date BETWEEN ? AND ?", from, to)
	if pid == nil {
		q = q.Where("project_id IS NULL")
	} else {
		q = q.Where("project_id = ?", *pid)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func projectExpenses(pid *uint, from, to time.Time, mode string) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := database.DB.Model(&models.Expense{})
	if mode == ModeCash {
		q = q.Where("status = ?", models.ExpenseStatusPaid).
			Where("paid_date IS NOT NULL").
			Where("paid_date BETWEEN ? AND ?", from, to)
	} else {
		q = q.Where("status <> ?", models.ExpenseStatusReversed).
			Where("date BETWEEN ? AND ?", from, to)
	}
	if pid == nil {
		q = q.Where("project_id IS NULL")
	} else {
		q = q.Where("project_id = ?", *pid)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

// ObligationsSummaryResult aggregates the year's open obligations.
type ObligationsSummaryResult struct {
	UnpaidCount  int             `json:"unpaid_count"`
	OverdueCount int             `json:"overdue_count"`
	OverdueSum   decimal.Decimal `json:"overdue_sum"`
	NextDeadline *string         `json:"next_deadline"`
}

// ObligationsSummary reports open/overdue counts and the next deadline still
// ahead of today.
func ObligationsSummary(year int) (*ObligationsSummaryResult, error) {
	var items []models.MonthlyObligation
	if err := database.DB.Where("year = ?", year).Order("deadline").Find(&items).Error; err != nil {
		return nil, err
	}
	today := dateOnly(time.Now())
	res := &ObligationsSummaryResult{OverdueSum: decimal.Zero}
	for _, ob := range items {
		if ob.IsOpen() {
			res.UnpaidCount++
			if ob.Status == models.ObligationStatusOverdue {
				res.OverdueCount++
				res.OverdueSum = res.OverdueSum.Add(ob.Amount)
			}
			if res.NextDeadline == nil && !ob.Deadline.Before(today) {
				s := ob.Deadline.Format(DateLayout)
				res.NextDeadline = &s
			}
		}
	}
	res.OverdueSum = res.OverdueSum.Round(2)
	return res, nil
}

// IncomeLimitStatus reports the statutory income thresholds of the flat-tax
// regime: the calendar-year limit and the trailing-twelve-month VAT limit.
type IncomeLimitStatus struct {
	YearIncome     decimal.Decimal `json:"year_income"`
	Income12M      decimal.Decimal `json:"income_12m"`
	LimitPausal    decimal.Decimal `json:"limit_pausal"`
	LimitVAT       decimal.Decimal `json:"limit_vat"`
	PercentPausal  decimal.Decimal `json:"percent_pausal"`
	PercentVAT     decimal.Decimal `json:"percent_vat"`
	WarningPausal  bool            `json:"warning_pausal"`
	WarningVAT     bool            `json:"warning_vat"`
	ExceededPausal bool            `json:"exceeded_pausal"`
	ExceededVAT    bool            `json:"exceeded_vat"`
}

// GetIncomeLimitStatus compares accrued income against the configured limits.
func GetIncomeLimitStatus(year int) (*IncomeLimitStatus, error) {
	yearIncome, err := incomeTotal(
		time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	today := dateOnly(time.Now())
	income12M, err := incomeTotal(today.AddDate(0, -12, 0), today)
	if err != nil {
		return nil, err
	}

	fin := config.GetConfig().Finance
	limitPausal := decimal.NewFromFloat(fin.IncomeLimitPausal)
	limitVAT := decimal.NewFromFloat(fin.IncomeLimitVAT)
	warn := decimal.NewFromFloat(fin.LimitWarningPercent)

	status := &IncomeLimitStatus{
		YearIncome:  yearIncome.Round(2),
		Income12M:   income12M.Round(2),
		LimitPausal: limitPausal,
		LimitVAT:    limitVAT,
	}
	hundred := decimal.NewFromInt(100)
	if limitPausal.IsPositive() {
		status.PercentPausal = yearIncome.Div(limitPausal).Mul(hundred).Round(2)
		status.WarningPausal = yearIncome.GreaterThanOrEqual(limitPausal.Mul(warn))
		status.ExceededPausal = yearIncome.GreaterThan(limitPausal)
	}
	if limitVAT.IsPositive() {
		status.PercentVAT = income12M.Div(limitVAT).Mul(hundred).Round(2)
		status.WarningVAT = income12M.GreaterThanOrEqual(limitVAT.Mul(warn))
		status.ExceededVAT = income12M.GreaterThan(limitVAT)
	}
	return status, nil
}

// incomeTotal sums non-cancelled income issued inside [from, to].
func incomeTotal(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := database.DB.Model(&models.Income{}).
		Where("status <> ?", models.IncomeStatusCancelled).
		Where("issued_date BETWEEN ? AND ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// UpcomingPayment is one derived occurrence of a recurring expense.
type UpcomingPayment struct {
	PlannedExpenseID uint            `json:"planned_expense_id"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	DueDate          string          `json:"due_date"`
	ReminderDays     int             `json:"reminder_days"`
	IsPaid           bool            `json:"is_paid"`
}

// UpcomingPayments lists occurrences of active templates within +-days of
// today: overdue and upcoming unpaid ones first by due date, settled ones at
// the end.
func UpcomingPayments(days int) ([]UpcomingPayment, error) {
	today := dateOnly(time.Now())
	rangeStart := today.AddDate(0, 0, -days)
	rangeEnd := today.AddDate(0, 0, days)

	var items []models.PlannedExpense
	if err := database.DB.Where("is_active = ?", true).Find(&items).Error; err != nil {
		return nil, err
	}

	paid, err := paidOccurrences(items)
	if err != nil {
		return nil, err
	}

	var unpaid, settled []UpcomingPayment
	for _, pe := range items {
		for _, d := range PaymentDatesInRange(pe, rangeStart, rangeEnd, maxWindowOccurrences) {
			p := UpcomingPayment{
				PlannedExpenseID: pe.ID,
				Name:             pe.Name,
				Amount:           pe.Amount.Round(2),
				Currency:         pe.Currency,
				DueDate:          d.Format(DateLayout),
				ReminderDays:     pe.ReminderDays,
				IsPaid:           paid[PaidOccurrence{PlannedExpenseID: pe.ID, DueDate: d.Format(DateLayout)}],
			}
			if p.IsPaid {
				settled = append(settled, p)
			} else {
				unpaid = append(unpaid, p)
			}
		}
	}
	sortPayments(unpaid)
	sortPayments(settled)
	return append(unpaid, settled...), nil
}

// paidOccurrences collects the (template, due date) pairs already settled.
func paidOccurrences(items []models.PlannedExpense) (map[PaidOccurrence]bool, error) {
	paid := make(map[PaidOccurrence]bool)
	if len(items) == 0 {
		return paid, nil
	}
	ids := make([]uint, 0, len(items))
	for _, pe := range items {
		ids = append(ids, pe.ID)
	}
	var marks []models.PlannedExpensePayment
	if err := database.DB.Where("planned_expense_id IN ?", ids).Find(&marks).Error; err != nil {
		return nil, err
	}
	for _, m := range marks {
		paid[PaidOccurrence{PlannedExpenseID: m.PlannedExpenseID, DueDate: m.DueDate.Format(DateLayout)}] = true
	}
	return paid, nil
}

func sortPayments(list []UpcomingPayment) {
	sort.Slice(list, func(i, j int) bool { return list[i].DueDate < list[j].DueDate })
}
