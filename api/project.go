package api

import (
	"time"

	"pausal/database"
	"pausal/models"
	"pausal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProjectHandler manages projects.
type ProjectHandler struct{}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{}
}

// ProjectRequest carries the writable fields of a project.
type ProjectRequest struct {
	Name           string           `json:"name" binding:"required" example:"Website rebuild"`
	ClientID       *uint            `json:"client_id"`
	ContractID     *uint            `json:"contract_id"`
	Status         string           `json:"status" example:"active"`
	StartDate      string           `json:"start_date" example:"2025-01-15"`
	EndDate        string           `json:"end_date"`
	PlannedIncome  *decimal.Decimal `json:"planned_income"`
	PlannedExpense *decimal.Decimal `json:"planned_expense"`
	Notes          string           `json:"notes"`
}

func validProjectStatus(s string) bool {
	switch s {
	case models.ProjectStatusLead, models.ProjectStatusActive,
		models.ProjectStatusCompleted, models.ProjectStatusArchived:
		return true
	}
	return false
}

// Create adds a project with an allocated PR-YYYY-NNNN code.
// @Summary Create project
// @Tags project
// @Accept json
// @Produce json
// @Param request body ProjectRequest true "project data"
// @Success 200 {object} Response{data=models.Project}
// @Failure 400 {object} Response
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	status := req.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	if !validProjectStatus(status) {
		BadRequest(c, "status must be lead, active, completed or archived")
		return
	}

	code, err := service.NextProjectCode()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to allocate project code"))
		return
	}

	project := models.Project{
		Code:           code,
		Name:           req.Name,
		ClientID:       req.ClientID,
		ContractID:     req.ContractID,
		Status:         status,
		PlannedIncome:  req.PlannedIncome,
		PlannedExpense: req.PlannedExpense,
		Notes:          req.Notes,
	}
	if ok := h.applyDates(c, &project, &req); !ok {
		return
	}
	if err := database.DB.Create(&project).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create project"))
		return
	}
	SuccessWithMessage(c, "project created", project)
}

func (h *ProjectHandler) applyDates(c *gin.Context, project *models.Project, req *ProjectRequest) bool {
	if req.StartDate != "" {
		d, err := parseDate(req.StartDate)
		if err != nil {
			BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
			return false
		}
		project.StartDate = &d
	} else {
		project.StartDate = nil
	}
	if req.EndDate != "" {
		d, err := parseDate(req.EndDate)
		if err != nil {
			BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
			return false
		}
		project.EndDate = &d
	} else {
		project.EndDate = nil
	}
	return true
}

// List returns projects, optionally filtered by status.
// @Summary List projects
// @Tags project
// @Produce json
// @Param status query string false "lead | active | completed | archived"
// @Success 200 {object} Response{data=[]models.Project}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	q := database.DB.Model(&models.Project{})
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list projects"))
		return
	}
	Success(c, projects)
}

// Get returns a single project.
// @Summary Get project
// @Tags project
// @Produce json
// @Param id path int true "project id"
// @Success 200 {object} Response{data=models.Project}
// @Failure 404 {object} Response
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		NotFound(c, "project not found")
		return
	}
	Success(c, project)
}

// Update modifies a project. The code never changes.
// @Summary Update project
// @Tags project
// @Accept json
// @Produce json
// @Param id path int true "project id"
// @Param request body ProjectRequest true "project data"
// @Success 200 {object} Response{data=models.Project}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		NotFound(c, "project not found")
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if req.Status != "" && !validProjectStatus(req.Status) {
		BadRequest(c, "status must be lead, active, completed or archived")
		return
	}

	project.Name = req.Name
	project.ClientID = req.ClientID
	project.ContractID = req.ContractID
	if req.Status != "" {
		project.Status = req.Status
	}
	project.PlannedIncome = req.PlannedIncome
	project.PlannedExpense = req.PlannedExpense
	project.Notes = req.Notes
	if ok := h.applyDates(c, &project, &req); !ok {
		return
	}
	project.UpdatedAt = time.Now()

	if err := database.DB.Save(&project).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update project"))
		return
	}
	SuccessWithMessage(c, "project updated", project)
}

// Archive retires a project. Archived projects reject new assignments but
// keep their history.
// @Summary Archive project
// @Tags project
// @Produce json
// @Param id path int true "project id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		NotFound(c, "project not found")
		return
	}
	if err := database.DB.Model(&project).Update("status", models.ProjectStatusArchived).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to archive project"))
		return
	}
	SuccessWithMessage(c, "project archived", nil)
}
