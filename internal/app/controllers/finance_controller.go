package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
)

// FinanceController handles scholarships and allowance payments
type FinanceController struct {
	scholarshipService services.ScholarshipService
	allowanceService   services.AllowanceService
}

// NewFinanceController creates a new FinanceController
func NewFinanceController(scholarshipService services.ScholarshipService, allowanceService services.AllowanceService) *FinanceController {
	return &FinanceController{
		scholarshipService: scholarshipService,
		allowanceService:   allowanceService,
	}
}

// ListScholarships lists scholarships
// @Summary List scholarships
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Only this student's scholarships"
// @Success 200 {object} dto.APIResponse{data=[]models.Scholarship}
// @Router /scholarships [get]
func (c *FinanceController) ListScholarships(ctx *gin.Context) {
	scholarships, err := c.scholarshipService.ListScholarships(ctx.Request.Context(), ctx.Query("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, scholarships)
}

// CreateScholarship grants a scholarship
// @Summary Create scholarship
// @Tags finance
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScholarshipForm true "Scholarship"
// @Success 201 {object} dto.APIResponse{data=models.Scholarship}
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /scholarships [post]
func (c *FinanceController) CreateScholarship(ctx *gin.Context) {
	var form dto.ScholarshipForm
	if !bindForm(ctx, &form, services.MsgMissingFields) {
		return
	}

	scholarship, err := c.scholarshipService.CreateScholarship(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, scholarship)
}

// UpdateScholarship replaces a scholarship
// @Summary Update scholarship
// @Tags finance
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Param request body dto.ScholarshipForm true "Scholarship"
// @Success 200 {object} dto.APIResponse{data=models.Scholarship}
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 404 {object} dto.ErrorResponse "Scholarship not found"
// @Router /scholarships/{id} [put]
func (c *FinanceController) UpdateScholarship(ctx *gin.Context) {
	var form dto.ScholarshipForm
	if !bindForm(ctx, &form, services.MsgMissingFields) {
		return
	}
	useRouteID(ctx, &form.ID)

	scholarship, err := c.scholarshipService.UpdateScholarship(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, scholarship)
}

// DeleteScholarship removes a scholarship
// @Summary Delete scholarship
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Scholarship not found"
// @Router /scholarships/{id} [delete]
func (c *FinanceController) DeleteScholarship(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	studentID, err := c.scholarshipService.DeleteScholarship(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Success: true, StudentID: studentID})
}

// ListAllowances lists allowance payments
// @Summary List allowances
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Only this student's allowances"
// @Success 200 {object} dto.APIResponse{data=[]models.Allowance}
// @Router /allowances [get]
func (c *FinanceController) ListAllowances(ctx *gin.Context) {
	allowances, err := c.allowanceService.ListAllowances(ctx.Request.Context(), ctx.Query("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, allowances)
}

// CreateAllowance records an allowance payment
// @Summary Create allowance
// @Tags finance
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.AllowanceForm true "Allowance"
// @Success 201 {object} dto.APIResponse{data=models.Allowance}
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /allowances [post]
func (c *FinanceController) CreateAllowance(ctx *gin.Context) {
	var form dto.AllowanceForm
	if !bindForm(ctx, &form, services.MsgMissingFields) {
		return
	}

	allowance, err := c.allowanceService.CreateAllowance(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, allowance)
}

// UpdateAllowance replaces an allowance payment
// @Summary Update allowance
// @Tags finance
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allowance ID"
// @Param request body dto.AllowanceForm true "Allowance"
// @Success 200 {object} dto.APIResponse{data=models.Allowance}
// @Failure 404 {object} dto.ErrorResponse "Allowance not found"
// @Router /allowances/{id} [put]
func (c *FinanceController) UpdateAllowance(ctx *gin.Context) {
	var form dto.AllowanceForm
	if !bindForm(ctx, &form, services.MsgMissingFields) {
		return
	}
	useRouteID(ctx, &form.ID)

	allowance, err := c.allowanceService.UpdateAllowance(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, allowance)
}

// DeleteAllowance removes an allowance payment
// @Summary Delete allowance
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allowance ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Allowance not found"
// @Router /allowances/{id} [delete]
func (c *FinanceController) DeleteAllowance(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	studentID, err := c.allowanceService.DeleteAllowance(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Success: true, StudentID: studentID})
}
