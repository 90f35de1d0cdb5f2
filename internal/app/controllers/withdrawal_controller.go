package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

// WithdrawalController handles course withdrawal requests
type WithdrawalController struct {
	withdrawalService services.WithdrawalService
}

// NewWithdrawalController creates a new WithdrawalController
func NewWithdrawalController(withdrawalService services.WithdrawalService) *WithdrawalController {
	return &WithdrawalController{withdrawalService: withdrawalService}
}

// RequestWithdrawal files a pending withdrawal request
// @Summary Request a withdrawal
// @Description Students file for themselves; admins may file for anyone
// @Tags withdrawals
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.WithdrawalForm true "Withdrawal"
// @Success 201 {object} dto.APIResponse{data=models.Withdrawal}
// @Failure 400 {object} dto.ErrorResponse "Student ID, course ID, and withdrawal date are required"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Failure 409 {object} dto.ErrorResponse "There is already a pending withdrawal request for this course"
// @Router /withdrawals [post]
func (c *WithdrawalController) RequestWithdrawal(ctx *gin.Context) {
	var form dto.WithdrawalForm
	if !bindForm(ctx, &form, services.MsgWithdrawalRequired) {
		return
	}

	withdrawal, err := c.withdrawalService.RequestWithdrawal(ctx.Request.Context(), middleware.CurrentProfile(ctx), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, withdrawal)
}

// AdminWithdraw withdraws a student immediately
// @Summary Withdraw a student
// @Description Records an approved withdrawal and marks the enrollment withdrawn
// @Tags withdrawals
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.WithdrawalForm true "Withdrawal"
// @Success 201 {object} dto.APIResponse{data=models.Withdrawal}
// @Failure 400 {object} dto.ErrorResponse "Student is not enrolled in this course"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Router /withdrawals/admin [post]
func (c *WithdrawalController) AdminWithdraw(ctx *gin.Context) {
	var form dto.WithdrawalForm
	if !bindForm(ctx, &form, services.MsgWithdrawalRequired) {
		return
	}

	withdrawal, err := c.withdrawalService.AdminWithdraw(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, withdrawal)
}

// UpdateStatus approves or rejects a pending request
// @Summary Decide a withdrawal
// @Tags withdrawals
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Param request body dto.WithdrawalStatusForm true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.Withdrawal}
// @Failure 400 {object} dto.ErrorResponse "ID and valid status are required"
// @Failure 404 {object} dto.ErrorResponse "Withdrawal request not found"
// @Failure 409 {object} dto.ErrorResponse "Withdrawal request has already been processed"
// @Router /withdrawals/{id}/status [put]
func (c *WithdrawalController) UpdateStatus(ctx *gin.Context) {
	var form dto.WithdrawalStatusForm
	if !bindForm(ctx, &form, services.MsgWithdrawalStatusInvalid) {
		return
	}
	useRouteID(ctx, &form.ID)

	withdrawal, err := c.withdrawalService.UpdateStatus(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, withdrawal)
}

// DeleteWithdrawal removes a withdrawal request
// @Summary Delete a withdrawal
// @Description Admins, or the student who owns the request
// @Tags withdrawals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Failure 404 {object} dto.ErrorResponse "Withdrawal request not found"
// @Router /withdrawals/{id} [delete]
func (c *WithdrawalController) DeleteWithdrawal(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	if err := c.withdrawalService.DeleteWithdrawal(ctx.Request.Context(), middleware.CurrentProfile(ctx), &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondSuccess(ctx, "Withdrawal request deleted")
}

// ListWithdrawals lists withdrawal requests, newest first
// @Summary List withdrawals
// @Tags withdrawals
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Student ID"
// @Param courseId query int false "Course ID"
// @Param status query string false "Status" Enums(pending, approved, rejected)
// @Success 200 {object} dto.APIResponse{data=[]models.Withdrawal}
// @Failure 400 {object} dto.ErrorResponse "Invalid withdrawal status"
// @Router /withdrawals [get]
func (c *WithdrawalController) ListWithdrawals(ctx *gin.Context) {
	filter := models.WithdrawalFilter{
		StudentID: ctx.Query("studentId"),
		Status:    models.WithdrawalStatus(ctx.Query("status")),
	}
	if raw := ctx.Query("courseId"); raw != "" {
		courseID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || courseID <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid courseId").WithField("courseId"))
			return
		}
		filter.CourseID = courseID
	}

	withdrawals, err := c.withdrawalService.ListWithdrawals(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, withdrawals)
}
