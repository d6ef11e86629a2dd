package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"pausal/database"
	"pausal/models"
	"pausal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeHandler manages the income book.
type IncomeHandler struct{}

func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// IncomeRequest carries the writable fields of an income record.
type IncomeRequest struct {
	IssuedDate    string          `json:"issued_date" binding:"required" example:"2025-02-15"`
	InvoiceNumber string          `json:"invoice_number" example:"2025-0001"`
	ClientID      *uint           `json:"client_id"`
	ClientName    string          `json:"client_name" example:"Acme d.o.o."`
	Description   string          `json:"description" example:"Consulting services, February"`
	Amount        decimal.Decimal `json:"amount" binding:"required" example:"120000"`
	Currency      string          `json:"currency" example:"RSD"`
	ProjectID     *uint           `json:"project_id"`
	ContractID    *uint           `json:"contract_id"`
	IncomeType    string          `json:"income_type" example:"final"`
	Note          string          `json:"note"`
}

// MarkPaidRequest carries the payment date of a mark-paid call.
type MarkPaidRequest struct {
	PaidDate  string `json:"paid_date" example:"2025-02-20"`
	Reference string `json:"reference" example:"970-0000000012345-44"`
}

// Create records a new income.
// @Summary Create income
// @Description Records an invoice in the income book. Without an explicit invoice number the next one in the yearly sequence is allocated.
// @Tags income
// @Accept json
// @Produce json
// @Param request body IncomeRequest true "income data"
// @Success 200 {object} Response{data=models.Income}
// @Failure 400 {object} Response
// @Failure 409 {object} Response "duplicate invoice number for the year"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	issued, err := parseDate(req.IssuedDate)
	if err != nil {
		BadRequest(c, "invalid issued_date, expected YYYY-MM-DD")
		return
	}
	if !req.Amount.IsPositive() {
		BadRequest(c, "amount must be positive")
		return
	}
	if ok := checkProjectAssignable(c, req.ProjectID); !ok {
		return
	}

	invoiceNumber := strings.TrimSpace(req.InvoiceNumber)
	if invoiceNumber == "" {
		invoiceNumber, err = service.NextInvoiceNumber(issued.Year())
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to allocate invoice number"))
			return
		}
	} else if invoiceTaken(invoiceNumber, issued.Year(), 0) {
		Conflict(c, service.ErrDuplicateInvoice.Error())
		return
	}

	income := models.Income{
		IssuedDate:    issued,
		InvoiceNumber: invoiceNumber,
		InvoiceYear:   issued.Year(),
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		Description:   req.Description,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ProjectID:     req.ProjectID,
		ContractID:    req.ContractID,
		IncomeType:    req.IncomeType,
		Note:          req.Note,
		Status:        models.IncomeStatusIssued,
	}
	if err := database.DB.Create(&income).Error; err != nil {
		if isDuplicateKey(err) {
			Conflict(c, service.ErrDuplicateInvoice.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to create income"))
		return
	}
	SuccessWithMessage(c, "income created", income)
}

// List returns incomes filtered by range, status and client.
// @Summary List incomes
// @Tags income
// @Produce json
// @Param from query string false "issued from (YYYY-MM-DD)"
// @Param to query string false "issued to (YYYY-MM-DD)"
// @Param status query string false "issued | paid | cancelled"
// @Param client_id query int false "client filter"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}}
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	q := database.DB.Model(&models.Income{}).
		Where("issued_date BETWEEN ? AND ?", from, to)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if id := uintQuery(c, "client_id"); id != nil {
		q = q.Where("client_id = ?", *id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to count incomes"))
		return
	}
	var incomes []models.Income
	if err := q.Order("issued_date DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list incomes"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: incomes})
}

// Get returns a single income.
// @Summary Get income
// @Tags income
// @Produce json
// @Param id path int true "income id"
// @Success 200 {object} Response{data=models.Income}
// @Failure 404 {object} Response
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "income not found")
		return
	}
	Success(c, income)
}

// Update modifies an income record.
// @Summary Update income
// @Tags income
// @Accept json
// @Produce json
// @Param id path int true "income id"
// @Param request body IncomeRequest true "income data"
// @Success 200 {object} Response{data=models.Income}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	issued, err := parseDate(req.IssuedDate)
	if err != nil {
		BadRequest(c, "invalid issued_date, expected YYYY-MM-DD")
		return
	}
	if !req.Amount.IsPositive() {
		BadRequest(c, "amount must be positive")
		return
	}
	if ok := checkProjectAssignable(c, req.ProjectID); !ok {
		return
	}
	invoiceNumber := strings.TrimSpace(req.InvoiceNumber)
	if invoiceNumber == "" {
		invoiceNumber = income.InvoiceNumber
	}
	if invoiceTaken(invoiceNumber, issued.Year(), income.ID) {
		Conflict(c, service.ErrDuplicateInvoice.Error())
		return
	}

	income.IssuedDate = issued
	income.InvoiceNumber = invoiceNumber
	income.InvoiceYear = issued.Year()
	income.ClientID = req.ClientID
	income.ClientName = req.ClientName
	income.Description = req.Description
	income.Amount = req.Amount
	income.Currency = req.Currency
	income.ProjectID = req.ProjectID
	income.ContractID = req.ContractID
	income.IncomeType = req.IncomeType
	income.Note = req.Note

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&income).Error; err != nil {
			return err
		}
		return syncInvoiceCashTransaction(tx, &income)
	})
	if err != nil {
		if isDuplicateKey(err) {
			Conflict(c, service.ErrDuplicateInvoice.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to update income"))
		return
	}
	SuccessWithMessage(c, "income updated", income)
}

// syncInvoiceCashTransaction keeps the cash ledger entry of a paid income in
// step with the invoice after an edit. Unpaid incomes carry no entry, so a
// stale one is removed.
func syncInvoiceCashTransaction(tx *gorm.DB, income *models.Income) error {
	scope := tx.Where("type = ? AND source = ? AND reference_id = ?",
		models.CashTransactionTypeIncome, models.CashTransactionSourceInvoice, income.ID)

	if income.Status != models.IncomeStatusPaid {
		return scope.Delete(&models.CashTransaction{}).Error
	}

	date := income.IssuedDate
	if income.PaidDate != nil {
		date = *income.PaidDate
	}

	var ct models.CashTransaction
	err := scope.First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ct = models.CashTransaction{
			Type:        models.CashTransactionTypeIncome,
			Source:      models.CashTransactionSourceInvoice,
			ReferenceID: income.ID,
			Amount:      income.Amount,
			Date:        date,
		}
		return tx.Create(&ct).Error
	}
	if err != nil {
		return err
	}
	ct.Amount = income.Amount
	ct.Date = date
	return tx.Save(&ct).Error
}

// Cancel marks an income cancelled, excluding it from every aggregate.
// @Summary Cancel income
// @Tags income
// @Produce json
// @Param id path int true "income id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "income not found")
		return
	}
	if income.Status == models.IncomeStatusPaid {
		BadRequest(c, "a paid income must be marked unpaid before cancelling")
		return
	}
	if err := database.DB.Model(&income).Update("status", models.IncomeStatusCancelled).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to cancel income"))
		return
	}
	SuccessWithMessage(c, "income cancelled", nil)
}

// MarkPaid records the payment and appends the cash ledger entry.
// @Summary Mark income paid
// @Tags income
// @Accept json
// @Produce json
// @Param id path int true "income id"
// @Param request body MarkPaidRequest false "payment data"
// @Success 200 {object} Response{data=models.Income}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/incomes/{id}/mark-paid [post]
func (h *IncomeHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "income not found")
		return
	}
	if income.Status == models.IncomeStatusCancelled {
		BadRequest(c, "cannot mark a cancelled income paid")
		return
	}
	if income.Status == models.IncomeStatusPaid {
		BadRequest(c, "income is already paid")
		return
	}

	var req MarkPaidRequest
	_ = c.ShouldBindJSON(&req)
	paid := time.Now().UTC().Truncate(24 * time.Hour)
	if req.PaidDate != "" {
		d, err := parseDate(req.PaidDate)
		if err != nil {
			BadRequest(c, "invalid paid_date, expected YYYY-MM-DD")
			return
		}
		paid = d
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		income.Status = models.IncomeStatusPaid
		income.PaidDate = &paid
		if req.Reference != "" {
			income.BankReference = req.Reference
		}
		if err := tx.Save(&income).Error; err != nil {
			return err
		}
		ct := models.CashTransaction{
			Type:        models.CashTransactionTypeIncome,
			Source:      models.CashTransactionSourceInvoice,
			ReferenceID: income.ID,
			Amount:      income.Amount,
			Date:        paid,
		}
		return tx.Create(&ct).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to mark income paid"))
		return
	}
	SuccessWithMessage(c, "income marked paid", income)
}

// MarkUnpaid withdraws a payment mark and removes the cash ledger entry.
// @Summary Mark income unpaid
// @Tags income
// @Produce json
// @Param id path int true "income id"
// @Success 200 {object} Response{data=models.Income}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/incomes/{id}/mark-unpaid [post]
func (h *IncomeHandler) MarkUnpaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "income not found")
		return
	}
	if income.Status != models.IncomeStatusPaid {
		BadRequest(c, "income is not paid")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("type = ? AND source = ? AND reference_id = ?",
				models.CashTransactionTypeIncome, models.CashTransactionSourceInvoice, income.ID).
			Delete(&models.CashTransaction{}).Error; err != nil {
			return err
		}
		income.Status = models.IncomeStatusIssued
		income.PaidDate = nil
		return tx.Save(&income).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to mark income unpaid"))
		return
	}
	SuccessWithMessage(c, "income marked unpaid", income)
}

// NextNumber previews the next invoice number without allocating it.
// @Summary Next invoice number
// @Tags income
// @Produce json
// @Param year query int false "invoice year, defaults to the current one"
// @Success 200 {object} Response
// @Router /api/v1/incomes/next-number [get]
func (h *IncomeHandler) NextNumber(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	var seq models.InvoiceSequence
	last := 0
	if err := database.DB.First(&seq, "year = ?", year).Error; err == nil {
		last = seq.LastNumber
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		InternalError(c, SafeErrorMessage(err, "failed to read sequence"))
		return
	}
	Success(c, gin.H{"year": year, "next_number": service.FormatInvoiceNumber(year, last+1)})
}

// CheckNumber reports whether an invoice number is free for a year.
// @Summary Check invoice number
// @Tags income
// @Produce json
// @Param number query string true "invoice number"
// @Param year query int false "invoice year, defaults to the current one"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/v1/incomes/check-number [get]
func (h *IncomeHandler) CheckNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		BadRequest(c, "number is required")
		return
	}
	year, ok := parseYear(c)
	if !ok {
		return
	}
	Success(c, gin.H{"number": number, "year": year, "available": !invoiceTaken(number, year, 0)})
}

func invoiceTaken(number string, year int, excludeID uint) bool {
	var count int64
	q := database.DB.Model(&models.Income{}).
		Where("invoice_number = ? AND invoice_year = ?", number, year)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}

// isDuplicateKey recognizes a unique index violation.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

// checkProjectAssignable rejects assignment to an archived project.
func checkProjectAssignable(c *gin.Context, projectID *uint) bool {
	if projectID == nil {
		return true
	}
	var project models.Project
	if err := database.DB.First(&project, *projectID).Error; err != nil {
		BadRequest(c, "project not found")
		return false
	}
	if project.Status == models.ProjectStatusArchived {
		BadRequest(c, service.ErrArchivedProject.Error())
		return false
	}
	return true
}

func pagination(c *gin.Context) (int, int) {
	page := 1
	pageSize := 20
	if n, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil && n > 0 && n <= 200 {
		pageSize = n
	}
	return page, pageSize
}
