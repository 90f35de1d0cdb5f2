package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
)

// ReportController handles accounting reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// ListReports returns accounting reports, latest report date first
// @Summary List accounting reports
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.AccountingReport}
// @Router /reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	reports, err := c.reportService.ListReports(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, reports)
}

// CreateReport adds an accounting report
// @Summary Create accounting report
// @Tags reports
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReportForm true "Report"
// @Success 201 {object} dto.APIResponse{data=models.AccountingReport}
// @Failure 400 {object} dto.ErrorResponse "Title and report date are required"
// @Router /reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	var form dto.ReportForm
	if !bindForm(ctx, &form, services.MsgReportCreateRequired) {
		return
	}

	report, err := c.reportService.CreateReport(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, report)
}

// UpdateReport replaces an accounting report
// @Summary Update accounting report
// @Tags reports
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.ReportForm true "Report"
// @Success 200 {object} dto.APIResponse{data=models.AccountingReport}
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /reports/{id} [put]
func (c *ReportController) UpdateReport(ctx *gin.Context) {
	var form dto.ReportForm
	if !bindForm(ctx, &form, services.MsgReportUpdateRequired) {
		return
	}
	useRouteID(ctx, &form.ID)

	report, err := c.reportService.UpdateReport(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, report)
}

// DeleteReport removes an accounting report
// @Summary Delete accounting report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	if err := c.reportService.DeleteReport(ctx.Request.Context(), &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondSuccess(ctx, "Report deleted")
}
