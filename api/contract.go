package api

import (
	"pausal/database"
	"pausal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContractHandler manages contracts and their line items.
type ContractHandler struct{}

func NewContractHandler() *ContractHandler {
	return &ContractHandler{}
}

// ContractItemRequest is one service or goods line.
type ContractItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" example:"h"`
	Price       decimal.Decimal `json:"price"`
}

// ContractRequest carries the writable fields of a contract.
type ContractRequest struct {
	Number        string                `json:"number" binding:"required" example:"U-2025-01"`
	Date          string                `json:"date" binding:"required" example:"2025-01-10"`
	ClientID      uint                  `json:"client_id" binding:"required"`
	ProjectID     *uint                 `json:"project_id"`
	ContractType  string                `json:"contract_type" example:"service"`
	Subject       string                `json:"subject"`
	Currency      string                `json:"currency" example:"RSD"`
	ValidityStart string                `json:"validity_start"`
	ValidityEnd   string                `json:"validity_end"`
	Status        string                `json:"status" example:"active"`
	Note          string                `json:"note"`
	Items         []ContractItemRequest `json:"items"`
}

// Create records a contract; the amount is derived from its items.
// @Summary Create contract
// @Tags contract
// @Accept json
// @Produce json
// @Param request body ContractRequest true "contract data"
// @Success 200 {object} Response{data=models.Contract}
// @Failure 400 {object} Response
// @Router /api/v1/contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	contract, items, ok := h.buildContract(c, &req, nil)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ContractID = contract.ID
			items[i].SortOrder = i
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create contract"))
		return
	}
	contract.Items = items
	SuccessWithMessage(c, "contract created", contract)
}

func (h *ContractHandler) buildContract(c *gin.Context, req *ContractRequest, existing *models.Contract) (*models.Contract, []models.ContractItem, bool) {
	d, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return nil, nil, false
	}

	contract := existing
	if contract == nil {
		contract = &models.Contract{Status: models.ContractStatusActive}
	}
	contract.Number = req.Number
	contract.Date = d
	contract.ClientID = req.ClientID
	contract.ProjectID = req.ProjectID
	contract.ContractType = req.ContractType
	contract.Subject = req.Subject
	contract.Currency = req.Currency
	contract.Note = req.Note
	if req.Status != "" {
		contract.Status = req.Status
	}

	if req.ValidityStart != "" {
		v, err := parseDate(req.ValidityStart)
		if err != nil {
			BadRequest(c, "invalid validity_start, expected YYYY-MM-DD")
			return nil, nil, false
		}
		contract.ValidityStart = &v
	}
	if req.ValidityEnd != "" {
		v, err := parseDate(req.ValidityEnd)
		if err != nil {
			BadRequest(c, "invalid validity_end, expected YYYY-MM-DD")
			return nil, nil, false
		}
		contract.ValidityEnd = &v
	}

	total := decimal.Zero
	items := make([]models.ContractItem, 0, len(req.Items))
	for _, it := range req.Items {
		qty := it.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		amount := qty.Mul(it.Price).Round(2)
		items = append(items, models.ContractItem{
			Description: it.Description,
			Quantity:    qty,
			Unit:        it.Unit,
			Price:       it.Price,
			Amount:      amount,
		})
		total = total.Add(amount)
	}
	contract.Amount = total
	return contract, items, true
}

// List returns contracts with their items.
// @Summary List contracts
// @Tags contract
// @Produce json
// @Param client_id query int false "client filter"
// @Param status query string false "active | completed | cancelled"
// @Success 200 {object} Response{data=[]models.Contract}
// @Router /api/v1/contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	q := database.DB.Model(&models.Contract{}).Preload("Items")
	if id := uintQuery(c, "client_id"); id != nil {
		q = q.Where("client_id = ?", *id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	var contracts []models.Contract
	if err := q.Order("date DESC").Find(&contracts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list contracts"))
		return
	}
	Success(c, contracts)
}

// Update replaces a contract and its items.
// @Summary Update contract
// @Tags contract
// @Accept json
// @Produce json
// @Param id path int true "contract id"
// @Param request body ContractRequest true "contract data"
// @Success 200 {object} Response{data=models.Contract}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var contract models.Contract
	if err := database.DB.First(&contract, id).Error; err != nil {
		NotFound(c, "contract not found")
		return
	}
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	updated, items, ok := h.buildContract(c, &req, &contract)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(updated).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", updated.ID).Delete(&models.ContractItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ContractID = updated.ID
			items[i].SortOrder = i
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update contract"))
		return
	}
	updated.Items = items
	SuccessWithMessage(c, "contract updated", updated)
}

// Cancel marks a contract cancelled.
// @Summary Cancel contract
// @Tags contract
// @Produce json
// @Param id path int true "contract id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/contracts/{id} [delete]
func (h *ContractHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var contract models.Contract
	if err := database.DB.First(&contract, id).Error; err != nil {
		NotFound(c, "contract not found")
		return
	}
	if err := database.DB.Model(&contract).Update("status", models.ContractStatusCancelled).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to cancel contract"))
		return
	}
	SuccessWithMessage(c, "contract cancelled", nil)
}
