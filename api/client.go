package api

import (
	"pausal/database"
	"pausal/models"

	"github.com/gin-gonic/gin"
)

// ClientHandler manages the counterparty directory.
type ClientHandler struct{}

func NewClientHandler() *ClientHandler {
	return &ClientHandler{}
}

// ClientRequest carries the writable fields of a client.
type ClientRequest struct {
	Name             string `json:"name" binding:"required" example:"Acme d.o.o."`
	Address          string `json:"address"`
	TaxID            string `json:"tax_id" example:"123456789"`
	Contact          string `json:"contact"`
	ClientType       string `json:"client_type" example:"legal"`
	DocumentLanguage string `json:"document_language" example:"sr"`
}

// Create adds a client.
// @Summary Create client
// @Tags client
// @Accept json
// @Produce json
// @Param request body ClientRequest true "client data"
// @Success 200 {object} Response{data=models.Client}
// @Failure 400 {object} Response
// @Router /api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	client := models.Client{
		Name:             req.Name,
		Address:          req.Address,
		TaxID:            req.TaxID,
		Contact:          req.Contact,
		ClientType:       req.ClientType,
		DocumentLanguage: req.DocumentLanguage,
	}
	if err := database.DB.Create(&client).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create client"))
		return
	}
	SuccessWithMessage(c, "client created", client)
}

// List returns clients, archived ones excluded unless requested.
// @Summary List clients
// @Tags client
// @Produce json
// @Param include_archived query bool false "include archived clients"
// @Success 200 {object} Response{data=[]models.Client}
// @Router /api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	q := database.DB.Model(&models.Client{})
	if c.Query("include_archived") != "true" {
		q = q.Where("is_archived = ?", false)
	}
	var clients []models.Client
	if err := q.Order("name").Find(&clients).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list clients"))
		return
	}
	Success(c, clients)
}

// Update modifies a client.
// @Summary Update client
// @Tags client
// @Accept json
// @Produce json
// @Param id path int true "client id"
// @Param request body ClientRequest true "client data"
// @Success 200 {object} Response{data=models.Client}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		NotFound(c, "client not found")
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	client.Name = req.Name
	client.Address = req.Address
	client.TaxID = req.TaxID
	client.Contact = req.Contact
	client.ClientType = req.ClientType
	client.DocumentLanguage = req.DocumentLanguage
	if err := database.DB.Save(&client).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update client"))
		return
	}
	SuccessWithMessage(c, "client updated", client)
}

// Archive hides a client from the default listing. Records referencing the
// client stay intact.
// @Summary Archive client
// @Tags client
// @Produce json
// @Param id path int true "client id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		NotFound(c, "client not found")
		return
	}
	if err := database.DB.Model(&client).Update("is_archived", true).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to archive client"))
		return
	}
	SuccessWithMessage(c, "client archived", nil)
}
