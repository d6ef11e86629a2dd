package service

import (
	"time"

	"pausal/database"
	"pausal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryFilters narrows the aggregation. Client, contract and project apply
// to income queries; category and tax-relatedness to expense queries. A
// filter applies to both the accrual and the cash query of its entity type.
type SummaryFilters struct {
	ClientID     *uint
	ContractID   *uint
	ProjectID    *uint
	Category     *string
	IsTaxRelated *bool
}

// PeriodBucket is one row of the dual-basis series.
type PeriodBucket struct {
	Period           string          `json:"period"`
	RevenueAccrual   decimal.Decimal `json:"revenue_accrual"`
	RevenueCash      decimal.Decimal `json:"revenue_cash"`
	ExpenseAccrual   decimal.Decimal `json:"expense_accrual"`
	ExpenseCash      decimal.Decimal `json:"expense_cash"`
	TaxesCash        decimal.Decimal `json:"taxes_cash"`
	NetProfitAccrual decimal.Decimal `json:"net_profit_accrual"`
	NetProfitCash    decimal.Decimal `json:"net_profit_cash"`
}

// SummaryTotals aggregates the whole range.
type SummaryTotals struct {
	RevenueAccrual   decimal.Decimal `json:"revenue_accrual"`
	RevenueCash      decimal.Decimal `json:"revenue_cash"`
	ExpenseAccrual   decimal.Decimal `json:"expense_accrual"`
	ExpenseCash      decimal.Decimal `json:"expense_cash"`
	TaxesCash        decimal.Decimal `json:"taxes_cash"`
	NetProfitAccrual decimal.Decimal `json:"net_profit_accrual"`
	NetProfitCash    decimal.Decimal `json:"net_profit_cash"`
}

// DateRange echoes the requested range in ISO form.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SummaryResult is the aggregator output: one bucket per period key in the
// range, in ascending key order, plus grand totals.
type SummaryResult struct {
	Range   DateRange      `json:"range"`
	GroupBy string         `json:"group_by"`
	Mode    string         `json:"mode"`
	Series  []PeriodBucket `json:"series"`
	Totals  SummaryTotals  `json:"totals"`
}

type periodSum struct {
	Period string
	Total  decimal.Decimal
}

// FinanceSummary buckets incomes, expenses and cash transactions into
// accrual and cash series per period. Accrual revenue follows the invoice
// issue date (cancelled invoices excluded), accrual expense the expense date
// (reversed excluded). Cash revenue is summed from the cash transaction
// ledger; cash expense and taxes follow the expense paid date. Every period
// in the range appears in the output, zero-valued when nothing matched. An
// empty or inverted range yields an empty series with zero totals.
func FinanceSummary(from, to time.Time, groupBy, mode string, filters SummaryFilters) (*SummaryResult, error) {
	from, to = dateOnly(from), dateOnly(to)
	result := &SummaryResult{
		Range:   DateRange{From: from.Format(DateLayout), To: to.Format(DateLayout)},
		GroupBy: groupBy,
		Mode:    mode,
		Series:  []PeriodBucket{},
	}

	keys := PeriodKeys(from, to, groupBy)
	if len(keys) == 0 {
		return result, nil
	}
	buckets := make(map[string]*PeriodBucket, len(keys))
	for _, k := range keys {
		buckets[k] = &PeriodBucket{Period: k}
	}

	format := sqlPeriodFormat(groupBy)
	needAccrual := mode == ModeAccrual || mode == ModeBoth
	needCash := mode == ModeCash || mode == ModeBoth

	if needAccrual {
		rows, err := sumGrouped(incomeFiltered(
			database.DB.Model(&models.Income{}).
				Where("status <> ?", models.IncomeStatusCancelled).
				Where("issued_date BETWEEN ? AND ?", from, to), filters, ""),
			"issued_date", format)
		if err != nil {
			return nil, err
		}
		assign(buckets, rows, func(b *PeriodBucket, v decimal.Decimal) { b.RevenueAccrual = v })

		rows, err = sumGrouped(expenseFiltered(
			database.DB.Model(&models.Expense{}).
				Where("status <> ?", models.ExpenseStatusReversed).
				Where("date BETWEEN ? AND ?", from, to), filters),
			"date", format)
		if err != nil {
			return nil, err
		}
		assign(buckets, rows, func(b *PeriodBucket, v decimal.Decimal) { b.ExpenseAccrual = v })
	}

	if needCash {
		q := database.DB.Model(&models.CashTransaction{}).
			Where("cash_transactions.type = ?", models.CashTransactionTypeIncome).
			Where("cash_transactions.date BETWEEN ? AND ?", from, to)
		// Income filters reach the ledger through its originating invoice.
		if filters.ClientID != nil || filters.ContractID != nil || filters.ProjectID != nil {
			q = incomeFiltered(q.
				Joins("JOIN income ON income.id = cash_transactions.reference_id").
				Where("cash_transactions.source = ?", models.CashTransactionSourceInvoice), filters, "income.")
		}
		rows, err := sumGrouped(q, "cash_transactions.date", format)
		if err != nil {
			return nil, err
		}
		assign(buckets, rows, func(b *PeriodBucket, v decimal.Decimal) { b.RevenueCash = v })

		rows, err = sumGrouped(expenseFiltered(
			database.DB.Model(&models.Expense{}).
				Where("status = ?", models.ExpenseStatusPaid).
				Where("paid_date IS NOT NULL").
				Where("paid_date BETWEEN ? AND ?", from, to), filters),
			"paid_date", format)
		if err != nil {
			return nil, err
		}
		assign(buckets, rows, func(b *PeriodBucket, v decimal.Decimal) { b.ExpenseCash = v })

		taxQ := database.DB.Model(&models.Expense{}).
			Where("status = ?", models.ExpenseStatusPaid).
			Where("is_tax_related = ?", true).
			Where("paid_date IS NOT NULL").
			Where("paid_date BETWEEN ? AND ?", from, to)
		if filters.Category != nil {
			taxQ = taxQ.Where("category = ?", *filters.Category)
		}
		rows, err = sumGrouped(taxQ, "paid_date", format)
		if err != nil {
			return nil, err
		}
		assign(buckets, rows, func(b *PeriodBucket, v decimal.Decimal) { b.TaxesCash = v })
	}

	totals := SummaryTotals{}
	for _, k := range keys {
		b := buckets[k]
		b.NetProfitAccrual = b.RevenueAccrual.Sub(b.ExpenseAccrual)
		b.NetProfitCash = b.RevenueCash.Sub(b.ExpenseCash)
		roundBucket(b)
		totals.RevenueAccrual = totals.RevenueAccrual.Add(b.RevenueAccrual)
		totals.RevenueCash = totals.RevenueCash.Add(b.RevenueCash)
		totals.ExpenseAccrual = totals.ExpenseAccrual.Add(b.ExpenseAccrual)
		totals.ExpenseCash = totals.ExpenseCash.Add(b.ExpenseCash)
		totals.TaxesCash = totals.TaxesCash.Add(b.TaxesCash)
		result.Series = append(result.Series, *b)
	}
	totals.NetProfitAccrual = totals.RevenueAccrual.Sub(totals.ExpenseAccrual)
	totals.NetProfitCash = totals.RevenueCash.Sub(totals.ExpenseCash)
	result.Totals = totals
	return result, nil
}

// sumGrouped runs one COALESCE(SUM(amount)) query grouped by the formatted
// date column.
func sumGrouped(q *gorm.DB, dateCol, format string) ([]periodSum, error) {
	var rows []periodSum
	err := q.Select("DATE_FORMAT("+dateCol+", ?) AS period, COALESCE(SUM(amount), 0) AS total", format).
		Group("period").
		Scan(&rows).Error
	return rows, err
}

func assign(buckets map[string]*PeriodBucket, rows []periodSum, set func(*PeriodBucket, decimal.Decimal)) {
	for _, r := range rows {
		if b, ok := buckets[r.Period]; ok {
			set(b, r.Total)
		}
	}
}

func incomeFiltered(q *gorm.DB, f SummaryFilters, prefix string) *gorm.DB {
	if f.ClientID != nil {
		q = q.Where(prefix+"client_id = ?", *f.ClientID)
	}
	if f.ContractID != nil {
		q = q.Where(prefix+"contract_id = ?", *f.ContractID)
	}
	if f.ProjectID != nil {
		q = q.Where(prefix+"project_id = ?", *f.ProjectID)
	}
	return q
}

func expenseFiltered(q *gorm.DB, f SummaryFilters) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.IsTaxRelated != nil {
		q = q.Where("is_tax_related = ?", *f.IsTaxRelated)
	}
	return q
}

// roundBucket rounds to two fraction digits at the presentation boundary.
func roundBucket(b *PeriodBucket) {
	b.RevenueAccrual = b.RevenueAccrual.Round(2)
	b.RevenueCash = b.RevenueCash.Round(2)
	b.ExpenseAccrual = b.ExpenseAccrual.Round(2)
	b.ExpenseCash = b.ExpenseCash.Round(2)
	b.TaxesCash = b.TaxesCash.Round(2)
	b.NetProfitAccrual = b.NetProfitAccrual.Round(2)
	b.NetProfitCash = b.NetProfitCash.Round(2)
}
