package api

import (
	"errors"
	"time"

	"pausal/database"
	"pausal/models"
	"pausal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler manages cost records. Expenses generated from obligations
// or bank imports are never hard deleted; removal reverses them instead.
type ExpenseHandler struct{}

func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// ExpenseRequest carries the writable fields of an expense.
type ExpenseRequest struct {
	Date         string          `json:"date" binding:"required" example:"2025-02-18"`
	Description  string          `json:"description" binding:"required" example:"Office supplies"`
	Amount       decimal.Decimal `json:"amount" binding:"required" example:"300"`
	Currency     string          `json:"currency" example:"RSD"`
	Category     string          `json:"category" example:"materials"`
	PaidDate     string          `json:"paid_date" example:"2025-02-20"`
	IsTaxRelated bool            `json:"is_tax_related"`
	ProjectID    *uint           `json:"project_id"`
	Note         string          `json:"note"`
}

// ReverseRequest carries the optional reversal parameters.
type ReverseRequest struct {
	ReverseDate string `json:"reverse_date" example:"2025-03-01"`
	Comment     string `json:"comment" example:"entered twice"`
}

// Create records a new expense.
// @Summary Create expense
// @Tags expense
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "expense data"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 400 {object} Response
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	expense, ok := h.buildExpense(c, &req, nil)
	if !ok {
		return
	}
	if err := database.DB.Create(expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create expense"))
		return
	}
	SuccessWithMessage(c, "expense created", expense)
}

func (h *ExpenseHandler) buildExpense(c *gin.Context, req *ExpenseRequest, existing *models.Expense) (*models.Expense, bool) {
	d, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return nil, false
	}
	if !req.Amount.IsPositive() {
		BadRequest(c, "amount must be positive")
		return nil, false
	}
	if ok := checkProjectAssignable(c, req.ProjectID); !ok {
		return nil, false
	}

	expense := existing
	if expense == nil {
		expense = &models.Expense{Source: models.ExpenseSourceManual}
	}
	expense.Date = d
	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.Currency = req.Currency
	expense.Category = req.Category
	expense.IsTaxRelated = req.IsTaxRelated
	expense.ProjectID = req.ProjectID
	expense.Note = req.Note

	if req.PaidDate != "" {
		paid, err := parseDate(req.PaidDate)
		if err != nil {
			BadRequest(c, "invalid paid_date, expected YYYY-MM-DD")
			return nil, false
		}
		expense.PaidDate = &paid
		expense.Status = models.ExpenseStatusPaid
	} else {
		expense.PaidDate = nil
		expense.Status = models.ExpenseStatusPlanned
	}
	return expense, true
}

// List returns expenses filtered by range and category.
// @Summary List expenses
// @Tags expense
// @Produce json
// @Param from query string false "from (YYYY-MM-DD)"
// @Param to query string false "to (YYYY-MM-DD)"
// @Param category query string false "category filter"
// @Param status query string false "planned | paid | reversed"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}}
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	q := database.DB.Model(&models.Expense{}).
		Where("date BETWEEN ? AND ?", from, to)
	if s := c.Query("category"); s != "" {
		q = q.Where("category = ?", s)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to count expenses"))
		return
	}
	var expenses []models.Expense
	if err := q.Order("date DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list expenses"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: expenses})
}

// Get returns a single expense.
// @Summary Get expense
// @Tags expense
// @Produce json
// @Param id path int true "expense id"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}
	Success(c, expense)
}

// Update modifies a manual expense. Generated and reversed expenses are
// immutable.
// @Summary Update expense
// @Tags expense
// @Accept json
// @Produce json
// @Param id path int true "expense id"
// @Param request body ExpenseRequest true "expense data"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}
	if expense.Status == models.ExpenseStatusReversed || expense.ReversedExpenseID != nil {
		BadRequest(c, "a reversed expense cannot be modified")
		return
	}
	if expense.Source == models.ExpenseSourceObligation {
		BadRequest(c, "an obligation payment is managed through the obligation itself")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	updated, ok := h.buildExpense(c, &req, &expense)
	if !ok {
		return
	}
	if err := database.DB.Save(updated).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update expense"))
		return
	}
	SuccessWithMessage(c, "expense updated", updated)
}

// Delete removes an expense. Records with financial meaning are reversed
// instead of deleted, keeping the books append only.
// @Summary Delete or reverse expense
// @Tags expense
// @Produce json
// @Param id path int true "expense id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	if expense.Source == models.ExpenseSourceObligation || expense.Source == models.ExpenseSourceBankImport {
		reversal, err := service.ReverseExpense(&expense, nil, "removed", expense.Source)
		if err != nil {
			if errors.Is(err, service.ErrAlreadyReversed) {
				Conflict(c, err.Error())
				return
			}
			InternalError(c, SafeErrorMessage(err, "failed to reverse expense"))
			return
		}
		SuccessWithMessage(c, "expense reversed", reversal)
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete expense"))
		return
	}
	SuccessWithMessage(c, "expense deleted", nil)
}

// Reverse appends a reversal record for a paid expense.
// @Summary Reverse expense
// @Description Appends a record with the negated amount; the original row stays untouched. An expense can be reversed at most once.
// @Tags expense
// @Accept json
// @Produce json
// @Param id path int true "expense id"
// @Param request body ReverseRequest false "reversal data"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/v1/expenses/{id}/reverse [post]
func (h *ExpenseHandler) Reverse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	var req ReverseRequest
	_ = c.ShouldBindJSON(&req)
	var revDate *time.Time
	if req.ReverseDate != "" {
		d, err := parseDate(req.ReverseDate)
		if err != nil {
			BadRequest(c, "invalid reverse_date, expected YYYY-MM-DD")
			return
		}
		revDate = &d
	}

	reversal, err := service.ReverseExpense(&expense, revDate, req.Comment, expense.Source)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyReversed) {
			Conflict(c, err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to reverse expense"))
		return
	}
	SuccessWithMessage(c, "expense reversed", reversal)
}
