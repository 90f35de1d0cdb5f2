package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/middleware"
)

// CourseController handles the course catalogue and course-scoped actions
type CourseController struct {
	courseService         services.CourseService
	enrollmentService     services.EnrollmentService
	bulkWithdrawalService services.BulkWithdrawalService
}

// NewCourseController creates a new CourseController
func NewCourseController(
	courseService services.CourseService,
	enrollmentService services.EnrollmentService,
	bulkWithdrawalService services.BulkWithdrawalService,
) *CourseController {
	return &CourseController{
		courseService:         courseService,
		enrollmentService:     enrollmentService,
		bulkWithdrawalService: bulkWithdrawalService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseForm true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Title, course code, and credits are required"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var form dto.CourseForm
	if !bindForm(ctx, &form, services.MsgCourseCreateRequired) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, course)
}

// UpdateCourse replaces a course
// @Summary Update a course
// @Tags courses
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseForm true "Course"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "ID, title, course code, and credits are required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var form dto.CourseForm
	if !bindForm(ctx, &form, services.MsgCourseUpdateRequired) {
		return
	}
	useRouteID(ctx, &form.ID)

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// DeleteCourse removes a course nobody is enrolled in
// @Summary Delete a course
// @Description Rejected while any enrollment, current or past, references the course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Cannot delete course that is assigned to students"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	form := dto.IDForm{ID: dto.FormValue(ctx.Param("id"))}
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondSuccess(ctx, "Course deleted")
}

// ListCourses returns every course ordered by code
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// GetCourse returns one course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// ListEnrollments lists the students of a course
// @Summary Course enrollments
// @Description Feeds the bulk withdrawal selection page
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param status query string false "Enrollment status" Enums(active, withdrawn, pending, completed)
// @Success 200 {object} dto.APIResponse{data=[]models.StudentCourse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	enrollments, err := c.courseService.ListEnrollments(ctx.Request.Context(), id, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollments)
}

// BulkWithdraw withdraws many enrollments of a course at once
// @Summary Bulk withdrawal
// @Description Processes each enrollment id in order and reports per-item outcomes. studentIds holds enrollment ids.
// @Tags courses
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.BulkWithdrawalForm true "Selection"
// @Success 200 {object} dto.APIResponse{data=dto.BulkWithdrawalResponse}
// @Failure 400 {object} dto.ErrorResponse "Course ID, student IDs, and withdrawal date are required"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Router /courses/{id}/bulk-withdrawals [post]
func (c *CourseController) BulkWithdraw(ctx *gin.Context) {
	var form dto.BulkWithdrawalForm
	if !bindForm(ctx, &form, services.MsgBulkRequired) {
		return
	}

	result, err := c.bulkWithdrawalService.Process(ctx.Request.Context(), ctx.Param("id"), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.BulkWithdrawalResponse{Results: result})
}

// RemoveStudent deletes one enrollment from a course roster
// @Summary Remove a student from a course
// @Description Accepts enrollmentId or studentCourseId. Answers {success: true} without the envelope.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RemoveStudentRequest true "Enrollment"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Student course ID is required"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to remove student from course"
// @Router /courses/remove-student [post]
func (c *CourseController) RemoveStudent(ctx *gin.Context) {
	var req dto.RemoveStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err, services.MsgStudentCourseIDMissing))
		return
	}

	if err := c.enrollmentService.RemoveStudent(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
