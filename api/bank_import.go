package api

import (
	"pausal/service"

	"github.com/gin-gonic/gin"
)

// BankImportHandler applies parsed bank statement lines to the books.
// Statement file parsing happens outside this service; clients submit the
// already structured transactions.
type BankImportHandler struct{}

func NewBankImportHandler() *BankImportHandler {
	return &BankImportHandler{}
}

// BankApplyRequest is an import batch.
type BankApplyRequest struct {
	Items []service.BankApplyItem `json:"items" binding:"required"`
}

// Apply imports a batch of classified bank transactions.
// @Summary Apply bank transactions
// @Description Creates incomes and expenses from statement lines. Expense lines are reconciled against open obligations within the configured deadline window and amount tolerance. Malformed or duplicate lines are reported per line and never abort the batch.
// @Tags bank-import
// @Accept json
// @Produce json
// @Param request body BankApplyRequest true "import batch"
// @Success 200 {object} Response{data=service.BankApplyResult}
// @Failure 400 {object} Response
// @Router /api/v1/bank-import/apply [post]
func (h *BankImportHandler) Apply(c *gin.Context) {
	var req BankApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if len(req.Items) == 0 {
		BadRequest(c, "items must not be empty")
		return
	}

	result, err := service.ApplyBankTransactions(req.Items)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to apply bank transactions"))
		return
	}
	Success(c, result)
}
