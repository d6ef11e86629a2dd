package service

import (
	"errors"
	"time"

	"pausal/config"
	"pausal/database"
	"pausal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashFlowRow is one period of the cumulative cash ledger.
type CashFlowRow struct {
	Period  string          `json:"period"`
	Opening decimal.Decimal `json:"opening"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Closing decimal.Decimal `json:"closing"`
}

// CashFlowResult threads the running balance through the requested range.
type CashFlowResult struct {
	Range              DateRange       `json:"range"`
	GroupBy            string          `json:"group_by"`
	OpeningCashBalance decimal.Decimal `json:"opening_cash_balance"`
	Series             []CashFlowRow   `json:"series"`
}

// CashFlow folds the cash series into opening/closing balances. The first
// period opens with the enterprise's configured opening balance; every later
// period opens with the previous closing. Periods are emitted in ascending
// key order and must be consumed that way.
func CashFlow(from, to time.Time, groupBy string) (*CashFlowResult, error) {
	opening := openingCashBalance()

	summary, err := FinanceSummary(from, to, groupBy, ModeCash, SummaryFilters{})
	if err != nil {
		return nil, err
	}

	return &CashFlowResult{
		Range:              summary.Range,
		GroupBy:            groupBy,
		OpeningCashBalance: opening,
		Series:             foldCashFlow(summary.Series, opening),
	}, nil
}

// foldCashFlow computes closing = opening + inflow - outflow cumulatively.
func foldCashFlow(series []PeriodBucket, opening decimal.Decimal) []CashFlowRow {
	rows := make([]CashFlowRow, 0, len(series))
	prev := opening
	for _, b := range series {
		row := CashFlowRow{
			Period:  b.Period,
			Opening: prev,
			Inflow:  b.RevenueCash,
			Outflow: b.ExpenseCash,
		}
		row.Closing = row.Opening.Add(row.Inflow).Sub(row.Outflow)
		prev = row.Closing
		rows = append(rows, row)
	}
	return rows
}

// openingCashBalance reads the enterprise profile, falling back to the
// configured default when no profile exists.
func openingCashBalance() decimal.Decimal {
	var ent models.Enterprise
	err := database.DB.Order("id").First(&ent).Error
	if err == nil {
		return ent.OpeningCashBalance
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero
	}
	if config.GlobalConfig != nil {
		return decimal.NewFromFloat(config.GlobalConfig.Finance.OpeningCashBalance)
	}
	return decimal.Zero
}
