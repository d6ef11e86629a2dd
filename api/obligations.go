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

// ObligationHandler manages tax decisions and the monthly obligation
// calendar derived from them.
type ObligationHandler struct{}

func NewObligationHandler() *ObligationHandler {
	return &ObligationHandler{}
}

// DecisionRequest carries the writable fields of a year decision.
type DecisionRequest struct {
	Year             int              `json:"year" binding:"required" example:"2025"`
	PaymentTypeCode  string           `json:"payment_type_code" binding:"required" example:"tax"`
	PeriodStart      string           `json:"period_start" binding:"required" example:"2025-01-01"`
	PeriodEnd        string           `json:"period_end" binding:"required" example:"2025-12-31"`
	MonthlyAmount    decimal.Decimal  `json:"monthly_amount" binding:"required" example:"9000"`
	BaseAmount       *decimal.Decimal `json:"base_amount"`
	RatePercent      *decimal.Decimal `json:"rate_percent"`
	RecipientName    string           `json:"recipient_name" example:"Republika Srbija"`
	RecipientAccount string           `json:"recipient_account" binding:"required" example:"840-711122843-34"`
	PaymentCode      string           `json:"payment_code" example:"253"`
	Model            string           `json:"model" example:"97"`
	ReferenceNumber  string           `json:"reference_number" binding:"required" example:"41-123456789-12"`
	PaymentPurpose   string           `json:"payment_purpose" binding:"required" example:"Porez na prihode za YYYY"`
	IsProvisional    bool             `json:"is_provisional"`
}

// ObligationMarkPaidRequest carries the settlement parameters.
type ObligationMarkPaidRequest struct {
	PaidDate  string `json:"paid_date" example:"2025-02-14"`
	Reference string `json:"reference" example:"970-12345"`
}

// PaymentTypes lists the statutory contribution catalog.
// @Summary List payment types
// @Tags obligations
// @Produce json
// @Success 200 {object} Response{data=[]models.PaymentType}
// @Router /api/v1/obligations/payment-types [get]
func (h *ObligationHandler) PaymentTypes(c *gin.Context) {
	var types []models.PaymentType
	if err := database.DB.Order("sort_order").Find(&types).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list payment types"))
		return
	}
	Success(c, types)
}

// CreateDecision records a tax office decision.
// @Summary Create year decision
// @Description At most one final decision may exist per year and payment type; a provisional one may coexist with it.
// @Tags obligations
// @Accept json
// @Produce json
// @Param request body DecisionRequest true "decision data"
// @Success 200 {object} Response{data=models.YearDecision}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/v1/obligations/decisions [post]
func (h *ObligationHandler) CreateDecision(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	start, err := parseDate(req.PeriodStart)
	if err != nil {
		BadRequest(c, "invalid period_start, expected YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		BadRequest(c, "invalid period_end, expected YYYY-MM-DD")
		return
	}
	if !req.MonthlyAmount.IsPositive() {
		BadRequest(c, "monthly_amount must be positive")
		return
	}

	var pt models.PaymentType
	if err := database.DB.Where("code = ?", req.PaymentTypeCode).First(&pt).Error; err != nil {
		BadRequest(c, "unknown payment type code")
		return
	}

	if !req.IsProvisional {
		var count int64
		database.DB.Model(&models.YearDecision{}).
			Where("year = ? AND payment_type_id = ? AND is_provisional = ? AND is_active = ?",
				req.Year, pt.ID, false, true).
			Count(&count)
		if count > 0 {
			Conflict(c, service.ErrDuplicateDecision.Error())
			return
		}
	}

	decision := models.YearDecision{
		Year:             req.Year,
		PaymentTypeID:    pt.ID,
		PeriodStart:      start,
		PeriodEnd:        end,
		MonthlyAmount:    req.MonthlyAmount,
		BaseAmount:       req.BaseAmount,
		RatePercent:      req.RatePercent,
		RecipientName:    req.RecipientName,
		RecipientAccount: req.RecipientAccount,
		PaymentCode:      req.PaymentCode,
		Model:            req.Model,
		ReferenceNumber:  req.ReferenceNumber,
		PaymentPurpose:   service.PaymentPurposeWithYear(req.PaymentPurpose, req.Year),
		IsProvisional:    req.IsProvisional,
		IsActive:         true,
	}
	if err := database.DB.Create(&decision).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create decision"))
		return
	}
	SuccessWithMessage(c, "decision created", decision)
}

// ListDecisions returns the decisions of a year.
// @Summary List year decisions
// @Tags obligations
// @Produce json
// @Param year query int false "year, defaults to the current one"
// @Success 200 {object} Response{data=[]models.YearDecision}
// @Router /api/v1/obligations/decisions [get]
func (h *ObligationHandler) ListDecisions(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	var decisions []models.YearDecision
	if err := database.DB.Where("year = ?", year).
		Order("payment_type_id, is_provisional").
		Find(&decisions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list decisions"))
		return
	}
	Success(c, decisions)
}

// DeactivateDecision retires a decision without deleting it.
// @Summary Deactivate year decision
// @Tags obligations
// @Produce json
// @Param id path int true "decision id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/obligations/decisions/{id} [delete]
func (h *ObligationHandler) DeactivateDecision(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var decision models.YearDecision
	if err := database.DB.First(&decision, id).Error; err != nil {
		NotFound(c, "decision not found")
		return
	}
	if err := database.DB.Model(&decision).Update("is_active", false).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to deactivate decision"))
		return
	}
	SuccessWithMessage(c, "decision deactivated", nil)
}

// Generate materializes the monthly obligation calendar.
// @Summary Generate obligation calendar
// @Description Expands each active decision into twelve monthly obligations with deadlines on the 15th of the following month. Safe to call repeatedly; paid rows are never touched.
// @Tags obligations
// @Produce json
// @Param year query int false "year, defaults to the current one"
// @Param payment_type query string false "restrict to one payment type code"
// @Success 200 {object} Response{data=[]models.MonthlyObligation}
// @Failure 400 {object} Response
// @Router /api/v1/obligations/generate [post]
func (h *ObligationHandler) Generate(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	obligations, err := service.EnsureObligations(year, c.Query("payment_type"))
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to generate obligations"))
		return
	}
	SuccessWithMessage(c, "calendar generated", obligations)
}

// Calendar returns the obligations of a year, building missing months from
// the active decisions first.
// @Summary Obligation calendar
// @Tags obligations
// @Produce json
// @Param year query int false "year, defaults to the current one"
// @Param status query string false "unpaid | paid | overdue"
// @Success 200 {object} Response{data=[]models.MonthlyObligation}
// @Router /api/v1/obligations [get]
func (h *ObligationHandler) Calendar(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	if _, err := service.EnsureObligations(year, ""); err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build calendar"))
		return
	}
	q := database.DB.Where("year = ?", year)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	var obligations []models.MonthlyObligation
	if err := q.Order("month, payment_type_id").Find(&obligations).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list obligations"))
		return
	}
	Success(c, obligations)
}

// Summary returns the open/overdue dashboard numbers.
// @Summary Obligations summary
// @Tags obligations
// @Produce json
// @Param year query int false "year, defaults to the current one"
// @Success 200 {object} Response{data=service.ObligationsSummaryResult}
// @Router /api/v1/obligations/summary [get]
func (h *ObligationHandler) Summary(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	summary, err := service.ObligationsSummary(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build summary"))
		return
	}
	Success(c, summary)
}

// MarkPaid settles an obligation and records the matching tax expense.
// @Summary Mark obligation paid
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path int true "obligation id"
// @Param request body ObligationMarkPaidRequest false "settlement data"
// @Success 200 {object} Response{data=models.MonthlyObligation}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/obligations/{id}/mark-paid [post]
func (h *ObligationHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ObligationMarkPaidRequest
	_ = c.ShouldBindJSON(&req)

	paid := time.Now()
	if req.PaidDate != "" {
		d, err := parseDate(req.PaidDate)
		if err != nil {
			BadRequest(c, "invalid paid_date, expected YYYY-MM-DD")
			return
		}
		paid = d
	}

	ob, err := service.MarkObligationPaid(id, paid, req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "obligation not found")
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to mark obligation paid"))
		return
	}
	SuccessWithMessage(c, "obligation marked paid", ob)
}

// MarkUnpaid withdraws a settlement; the generated expense is reversed.
// @Summary Mark obligation unpaid
// @Tags obligations
// @Produce json
// @Param id path int true "obligation id"
// @Success 200 {object} Response{data=models.MonthlyObligation}
// @Failure 404 {object} Response
// @Router /api/v1/obligations/{id}/mark-unpaid [post]
func (h *ObligationHandler) MarkUnpaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ob, err := service.MarkObligationUnpaid(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "obligation not found")
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to mark obligation unpaid"))
		return
	}
	SuccessWithMessage(c, "obligation marked unpaid", ob)
}
