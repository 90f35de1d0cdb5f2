package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
)

// EnrollmentController assigns courses to students and removes them again
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// AssignCourse enrolls a student in a course
// @Summary Assign a course
// @Tags enrollments
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentForm true "Enrollment"
// @Success 201 {object} dto.APIResponse{data=models.StudentCourse}
// @Failure 400 {object} dto.ErrorResponse "Student ID, course ID, and enrollment date are required"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Student is already enrolled in this course"
// @Router /enrollments [post]
func (c *EnrollmentController) AssignCourse(ctx *gin.Context) {
	var form dto.EnrollmentForm
	if !bindForm(ctx, &form, services.MsgEnrollmentRequired) {
		return
	}

	enrollment, err := c.enrollmentService.AssignCourse(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, enrollment)
}

// RemoveCourse deletes an enrollment row
// @Summary Remove a course assignment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "ID is required"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) RemoveCourse(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	if err := c.enrollmentService.RemoveCourse(ctx.Request.Context(), &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondSuccess(ctx, "Course removed")
}
