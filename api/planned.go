package api

import (
	"strconv"
	"time"

	"pausal/database"
	"pausal/models"
	"pausal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedExpenseHandler manages recurring cost templates and their derived
// occurrences.
type PlannedExpenseHandler struct{}

func NewPlannedExpenseHandler() *PlannedExpenseHandler {
	return &PlannedExpenseHandler{}
}

// PlannedExpenseRequest carries the writable fields of a template.
type PlannedExpenseRequest struct {
	Name             string          `json:"name" binding:"required" example:"Office rent"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount" binding:"required" example:"25000"`
	Currency         string          `json:"currency" example:"RSD"`
	Category         string          `json:"category" example:"rent"`
	Period           string          `json:"period" binding:"required" example:"monthly"`
	PaymentDay       *int            `json:"payment_day" example:"5"`
	PaymentDayOfWeek *int            `json:"payment_day_of_week"`
	StartDate        string          `json:"start_date" binding:"required" example:"2025-01-01"`
	EndDate          string          `json:"end_date"`
	ReminderDays     int             `json:"reminder_days" example:"3"`
	IsActive         *bool           `json:"is_active"`
	Note             string          `json:"note"`
}

// OccurrenceRequest identifies one derived occurrence of a template.
type OccurrenceRequest struct {
	DueDate   string `json:"due_date" binding:"required" example:"2025-02-05"`
	PaidDate  string `json:"paid_date" example:"2025-02-05"`
	AsExpense bool   `json:"as_expense"`
	Note      string `json:"note"`
}

func validPeriod(p string) bool {
	switch p {
	case models.PeriodWeekly, models.PeriodMonthly, models.PeriodQuarterly, models.PeriodYearly:
		return true
	}
	return false
}

// Create adds a recurring expense template.
// @Summary Create planned expense
// @Tags planned
// @Accept json
// @Produce json
// @Param request body PlannedExpenseRequest true "template data"
// @Success 200 {object} Response{data=models.PlannedExpense}
// @Failure 400 {object} Response
// @Router /api/v1/planned-expenses [post]
func (h *PlannedExpenseHandler) Create(c *gin.Context) {
	var req PlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	pe, ok := h.buildTemplate(c, &req, nil)
	if !ok {
		return
	}
	if err := database.DB.Create(pe).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create planned expense"))
		return
	}
	SuccessWithMessage(c, "planned expense created", pe)
}

func (h *PlannedExpenseHandler) buildTemplate(c *gin.Context, req *PlannedExpenseRequest, existing *models.PlannedExpense) (*models.PlannedExpense, bool) {
	if !validPeriod(req.Period) {
		BadRequest(c, "period must be weekly, monthly, quarterly or yearly")
		return nil, false
	}
	if !req.Amount.IsPositive() {
		BadRequest(c, "amount must be positive")
		return nil, false
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		return nil, false
	}
	var end *time.Time
	if req.EndDate != "" {
		d, err := parseDate(req.EndDate)
		if err != nil {
			BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
			return nil, false
		}
		if d.Before(start) {
			BadRequest(c, "end_date must not precede start_date")
			return nil, false
		}
		end = &d
	}

	pe := existing
	if pe == nil {
		pe = &models.PlannedExpense{IsActive: true}
	}
	pe.Name = req.Name
	pe.Description = req.Description
	pe.Amount = req.Amount
	pe.Currency = req.Currency
	pe.Category = req.Category
	pe.Period = req.Period
	pe.PaymentDay = req.PaymentDay
	pe.PaymentDayOfWeek = req.PaymentDayOfWeek
	pe.StartDate = start
	pe.EndDate = end
	pe.ReminderDays = req.ReminderDays
	pe.Note = req.Note
	if req.IsActive != nil {
		pe.IsActive = *req.IsActive
	}
	return pe, true
}

// List returns every template.
// @Summary List planned expenses
// @Tags planned
// @Produce json
// @Param active query bool false "only active templates"
// @Success 200 {object} Response{data=[]models.PlannedExpense}
// @Router /api/v1/planned-expenses [get]
func (h *PlannedExpenseHandler) List(c *gin.Context) {
	q := database.DB.Model(&models.PlannedExpense{})
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	var items []models.PlannedExpense
	if err := q.Order("name").Find(&items).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list planned expenses"))
		return
	}
	Success(c, items)
}

// Update modifies a template. Derived occurrence dates change accordingly;
// already settled occurrences keep their payment marks.
// @Summary Update planned expense
// @Tags planned
// @Accept json
// @Produce json
// @Param id path int true "template id"
// @Param request body PlannedExpenseRequest true "template data"
// @Success 200 {object} Response{data=models.PlannedExpense}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/planned-expenses/{id} [put]
func (h *PlannedExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var pe models.PlannedExpense
	if err := database.DB.First(&pe, id).Error; err != nil {
		NotFound(c, "planned expense not found")
		return
	}
	var req PlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	updated, ok := h.buildTemplate(c, &req, &pe)
	if !ok {
		return
	}
	if err := database.DB.Save(updated).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update planned expense"))
		return
	}
	SuccessWithMessage(c, "planned expense updated", updated)
}

// Delete deactivates a template. Payment history stays intact.
// @Summary Deactivate planned expense
// @Tags planned
// @Produce json
// @Param id path int true "template id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/planned-expenses/{id} [delete]
func (h *PlannedExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var pe models.PlannedExpense
	if err := database.DB.First(&pe, id).Error; err != nil {
		NotFound(c, "planned expense not found")
		return
	}
	if err := database.DB.Model(&pe).Update("is_active", false).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to deactivate planned expense"))
		return
	}
	SuccessWithMessage(c, "planned expense deactivated", nil)
}

// Upcoming lists derived occurrences around today.
// @Summary Upcoming payments
// @Description Occurrences of active templates within the window, unpaid first. Overdue occurrences inside the window are included.
// @Tags planned
// @Produce json
// @Param days query int false "window half-width in days" default(30)
// @Success 200 {object} Response{data=[]service.UpcomingPayment}
// @Router /api/v1/planned-expenses/upcoming [get]
func (h *PlannedExpenseHandler) Upcoming(c *gin.Context) {
	days := 30
	if n, err := strconv.Atoi(c.DefaultQuery("days", "30")); err == nil && n > 0 && n <= 366 {
		days = n
	}
	payments, err := service.UpcomingPayments(days)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list upcoming payments"))
		return
	}
	Success(c, payments)
}

// MarkPaid settles one occurrence, optionally recording a real expense.
// @Summary Mark occurrence paid
// @Tags planned
// @Accept json
// @Produce json
// @Param id path int true "template id"
// @Param request body OccurrenceRequest true "occurrence data"
// @Success 200 {object} Response{data=models.PlannedExpensePayment}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/v1/planned-expenses/{id}/mark-paid [post]
func (h *PlannedExpenseHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var pe models.PlannedExpense
	if err := database.DB.First(&pe, id).Error; err != nil {
		NotFound(c, "planned expense not found")
		return
	}
	var req OccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		BadRequest(c, "invalid due_date, expected YYYY-MM-DD")
		return
	}
	paid := due
	if req.PaidDate != "" {
		if paid, err = parseDate(req.PaidDate); err != nil {
			BadRequest(c, "invalid paid_date, expected YYYY-MM-DD")
			return
		}
	}

	var count int64
	database.DB.Model(&models.PlannedExpensePayment{}).
		Where("planned_expense_id = ? AND due_date = ?", pe.ID, due).
		Count(&count)
	if count > 0 {
		Conflict(c, service.ErrOccurrenceAlreadyPaid.Error())
		return
	}

	var mark models.PlannedExpensePayment
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		mark = models.PlannedExpensePayment{
			PlannedExpenseID: pe.ID,
			DueDate:          due,
			PaidDate:         paid,
			Note:             req.Note,
		}
		if req.AsExpense {
			expense := models.Expense{
				Date:        paid,
				Description: pe.Name,
				Amount:      pe.Amount,
				Currency:    pe.Currency,
				Category:    pe.Category,
				PaidDate:    &paid,
				Status:      models.ExpenseStatusPaid,
				Source:      models.ExpenseSourcePlanned,
			}
			if err := tx.Create(&expense).Error; err != nil {
				return err
			}
			mark.ExpenseID = &expense.ID
		}
		return tx.Create(&mark).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			Conflict(c, service.ErrOccurrenceAlreadyPaid.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to mark occurrence paid"))
		return
	}
	SuccessWithMessage(c, "occurrence marked paid", mark)
}

// UnmarkPaid withdraws an occurrence payment mark. The linked expense, if
// one was recorded, is reversed.
// @Summary Unmark occurrence
// @Tags planned
// @Accept json
// @Produce json
// @Param id path int true "template id"
// @Param request body OccurrenceRequest true "occurrence data"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/planned-expenses/{id}/unmark-paid [post]
func (h *PlannedExpenseHandler) UnmarkPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		BadRequest(c, "invalid due_date, expected YYYY-MM-DD")
		return
	}

	var mark models.PlannedExpensePayment
	if err := database.DB.
		Where("planned_expense_id = ? AND due_date = ?", id, due).
		First(&mark).Error; err != nil {
		NotFound(c, "occurrence payment not found")
		return
	}

	if mark.ExpenseID != nil {
		var expense models.Expense
		if err := database.DB.First(&expense, *mark.ExpenseID).Error; err == nil {
			if expense.Status != models.ExpenseStatusReversed && expense.ReversedExpenseID == nil {
				if _, err := service.ReverseExpense(&expense, nil, "", models.ExpenseSourcePlanned); err != nil {
					InternalError(c, SafeErrorMessage(err, "failed to reverse linked expense"))
					return
				}
			}
		}
	}

	if err := database.DB.Delete(&mark).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to unmark occurrence"))
		return
	}
	SuccessWithMessage(c, "occurrence unmarked", nil)
}
