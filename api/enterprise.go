package api

import (
	"errors"

	"pausal/database"
	"pausal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EnterpriseHandler manages the single proprietor profile.
type EnterpriseHandler struct{}

func NewEnterpriseHandler() *EnterpriseHandler {
	return &EnterpriseHandler{}
}

// EnterpriseRequest carries the writable profile fields.
type EnterpriseRequest struct {
	Name               string          `json:"name" binding:"required" example:"Petar Petrović PR"`
	Address            string          `json:"address"`
	TaxID              string          `json:"tax_id"`
	RegistryNumber     string          `json:"registry_number"`
	BankName           string          `json:"bank_name"`
	BankAccount        string          `json:"bank_account"`
	BankSWIFT          string          `json:"bank_swift"`
	MainActivityCode   string          `json:"main_activity_code" example:"6201"`
	OpeningCashBalance decimal.Decimal `json:"opening_cash_balance"`
	OpeningCashDate    string          `json:"opening_cash_date" example:"2025-01-01"`
}

// Get returns the profile.
// @Summary Get enterprise profile
// @Tags enterprise
// @Produce json
// @Success 200 {object} Response{data=models.Enterprise}
// @Failure 404 {object} Response
// @Router /api/v1/enterprise [get]
func (h *EnterpriseHandler) Get(c *gin.Context) {
	var ent models.Enterprise
	if err := database.DB.Order("id").First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "enterprise profile not set up")
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to load profile"))
		return
	}
	Success(c, ent)
}

// Upsert creates or replaces the profile. A single row is kept.
// @Summary Save enterprise profile
// @Tags enterprise
// @Accept json
// @Produce json
// @Param request body EnterpriseRequest true "profile data"
// @Success 200 {object} Response{data=models.Enterprise}
// @Failure 400 {object} Response
// @Router /api/v1/enterprise [put]
func (h *EnterpriseHandler) Upsert(c *gin.Context) {
	var req EnterpriseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var ent models.Enterprise
	err := database.DB.Order("id").First(&ent).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		InternalError(c, SafeErrorMessage(err, "failed to load profile"))
		return
	}

	ent.Name = req.Name
	ent.Address = req.Address
	ent.TaxID = req.TaxID
	ent.RegistryNumber = req.RegistryNumber
	ent.BankName = req.BankName
	ent.BankAccount = req.BankAccount
	ent.BankSWIFT = req.BankSWIFT
	ent.MainActivityCode = req.MainActivityCode
	ent.OpeningCashBalance = req.OpeningCashBalance
	if req.OpeningCashDate != "" {
		d, err := parseDate(req.OpeningCashDate)
		if err != nil {
			BadRequest(c, "invalid opening_cash_date, expected YYYY-MM-DD")
			return
		}
		ent.OpeningCashDate = &d
	}

	if err := database.DB.Save(&ent).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to save profile"))
		return
	}
	SuccessWithMessage(c, "profile saved", ent)
}
