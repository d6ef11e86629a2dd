package api

import (
	"pausal/service"

	"github.com/gin-gonic/gin"
)

// FinanceHandler serves the aggregated financial views.
type FinanceHandler struct{}

func NewFinanceHandler() *FinanceHandler {
	return &FinanceHandler{}
}

// Summary returns the dual-basis period aggregation.
// @Summary Financial summary
// @Description Revenue, expenses and net profit bucketed per day, month or year, on accrual and cash basis
// @Tags finance
// @Produce json
// @Param from query string false "range start (YYYY-MM-DD), defaults to Jan 1 of the current year"
// @Param to query string false "range end (YYYY-MM-DD), defaults to Dec 31 of the current year"
// @Param group_by query string false "day | month | year" default(month)
// @Param mode query string false "accrual | cash | both" default(both)
// @Param client_id query int false "restrict incomes to a client"
// @Param contract_id query int false "restrict incomes to a contract"
// @Param project_id query int false "restrict incomes to a project"
// @Param category query string false "restrict expenses to a category"
// @Param is_tax_related query bool false "restrict expenses by tax flag"
// @Success 200 {object} Response{data=service.SummaryResult}
// @Failure 400 {object} Response
// @Router /api/v1/finance/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	groupBy := c.DefaultQuery("group_by", service.GroupByMonth)
	if !service.ValidGroupBy(groupBy) {
		BadRequest(c, "group_by must be day, month or year")
		return
	}
	mode := c.DefaultQuery("mode", service.ModeBoth)
	if !service.ValidMode(mode) {
		BadRequest(c, "mode must be accrual, cash or both")
		return
	}

	filters := service.SummaryFilters{
		ClientID:   uintQuery(c, "client_id"),
		ContractID: uintQuery(c, "contract_id"),
		ProjectID:  uintQuery(c, "project_id"),
	}
	if s := c.Query("category"); s != "" {
		filters.Category = &s
	}
	if s := c.Query("is_tax_related"); s != "" {
		v := s == "true" || s == "1"
		filters.IsTaxRelated = &v
	}

	result, err := service.FinanceSummary(from, to, groupBy, mode, filters)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build financial summary"))
		return
	}
	Success(c, result)
}

// CashFlow returns the cumulative cash ledger.
// @Summary Cash flow
// @Description Opening balance, inflow, outflow and closing balance per period
// @Tags finance
// @Produce json
// @Param from query string false "range start (YYYY-MM-DD)"
// @Param to query string false "range end (YYYY-MM-DD)"
// @Param group_by query string false "day | month | year" default(month)
// @Success 200 {object} Response{data=service.CashFlowResult}
// @Failure 400 {object} Response
// @Router /api/v1/finance/cash-flow [get]
func (h *FinanceHandler) CashFlow(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	groupBy := c.DefaultQuery("group_by", service.GroupByMonth)
	if !service.ValidGroupBy(groupBy) {
		BadRequest(c, "group_by must be day, month or year")
		return
	}

	result, err := service.CashFlow(from, to, groupBy)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build cash flow"))
		return
	}
	Success(c, result)
}

// Receivables lists open invoices with aging.
// @Summary Accounts receivable
// @Tags finance
// @Produce json
// @Success 200 {object} Response{data=service.ReceivablesResult}
// @Router /api/v1/finance/receivables [get]
func (h *FinanceHandler) Receivables(c *gin.Context) {
	result, err := service.AccountsReceivable()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load receivables"))
		return
	}
	Success(c, result)
}

// ByProject returns per-project profitability.
// @Summary Profitability by project
// @Tags finance
// @Produce json
// @Param from query string false "range start (YYYY-MM-DD)"
// @Param to query string false "range end (YYYY-MM-DD)"
// @Param mode query string false "accrual | cash" default(accrual)
// @Success 200 {object} Response{data=service.ProjectProfitResult}
// @Failure 400 {object} Response
// @Router /api/v1/finance/by-project [get]
func (h *FinanceHandler) ByProject(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	mode := c.DefaultQuery("mode", service.ModeAccrual)
	if mode != service.ModeAccrual && mode != service.ModeCash {
		BadRequest(c, "mode must be accrual or cash")
		return
	}

	result, err := service.FinanceByProject(from, to, mode)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build project breakdown"))
		return
	}
	Success(c, result)
}

// IncomeLimit reports the statutory income thresholds.
// @Summary Income limit status
// @Description Calendar-year and trailing-twelve-month income against the configured flat-tax and VAT limits
// @Tags finance
// @Produce json
// @Param year query int false "calendar year, defaults to the current one"
// @Success 200 {object} Response{data=service.IncomeLimitStatus}
// @Failure 400 {object} Response
// @Router /api/v1/finance/income-limit [get]
func (h *FinanceHandler) IncomeLimit(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	result, err := service.GetIncomeLimitStatus(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to compute income limits"))
		return
	}
	Success(c, result)
}
