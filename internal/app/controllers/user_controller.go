package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
	"github.com/yigit/campusportal/internal/pkg/helpers"
)

// UserController serves the admin user pages and the caller's own records
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers returns a page of profiles
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Matches email or full name"
// @Param role query string false "Role" Enums(admin, teacher, student)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err, "Invalid filter"))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	users, err := c.userService.ListUsers(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, users)
}

// GetUserDetail returns a profile with its enrollments and finances
// @Summary Get user detail
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.UserDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserDetail(ctx *gin.Context) {
	detail, err := c.userService.GetUserDetail(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, detail)
}

// MyCourses lists the caller's enrollments
// @Summary My courses
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentCourse}
// @Router /me/courses [get]
func (c *UserController) MyCourses(ctx *gin.Context) {
	courses, err := c.userService.MyCourses(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// MyWithdrawals lists the caller's withdrawal requests
// @Summary My withdrawals
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Withdrawal}
// @Router /me/withdrawals [get]
func (c *UserController) MyWithdrawals(ctx *gin.Context) {
	withdrawals, err := c.userService.MyWithdrawals(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, withdrawals)
}

// MyScholarships lists the caller's scholarships
// @Summary My scholarships
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Scholarship}
// @Router /me/scholarships [get]
func (c *UserController) MyScholarships(ctx *gin.Context) {
	scholarships, err := c.userService.MyScholarships(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, scholarships)
}

// MyAllowances lists the caller's allowance payments
// @Summary My allowances
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Allowance}
// @Router /me/allowances [get]
func (c *UserController) MyAllowances(ctx *gin.Context) {
	allowances, err := c.userService.MyAllowances(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, allowances)
}
