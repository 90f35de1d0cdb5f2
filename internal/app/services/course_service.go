package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

// Course messages
const (
	MsgCourseCreateRequired = "Title, course code, and credits are required"
	MsgCourseUpdateRequired = "ID, title, course code, and credits are required"
	MsgCourseInUse          = "Cannot delete course that is assigned to students"
	MsgCourseNotFound       = "Course not found"
	MsgCourseCodeTaken      = "A course with this code already exists"
)

// CourseService manages the course catalogue
type CourseService interface {
	CreateCourse(ctx context.Context, form *dto.CourseForm) (*models.Course, error)
	UpdateCourse(ctx context.Context, form *dto.CourseForm) (*models.Course, error)
	DeleteCourse(ctx context.Context, form *dto.IDForm) error
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	// ListEnrollments returns the course's enrollments, optionally narrowed to one status.
	ListEnrollments(ctx context.Context, courseID int64, status string) ([]*models.StudentCourse, error)
}

type courseServiceImpl struct {
	courses     repositories.CourseRepository
	enrollments repositories.EnrollmentRepository
	notifier    revalidate.Notifier
	logger      zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courses repositories.CourseRepository,
	enrollments repositories.EnrollmentRepository,
	notifier revalidate.Notifier,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courses:     courses,
		enrollments: enrollments,
		notifier:    notifier,
		logger:      logger.With().Str("service", "course").Logger(),
	}
}

// courseFromForm maps the mutable fields; message is returned on any missing field
func courseFromForm(form *dto.CourseForm, message string) (*models.Course, error) {
	credits, ok := parseInt(form.Credits)
	if form.Title.Empty() || form.CourseCode.Empty() || !ok {
		return nil, apperrors.NewValidationError(message)
	}
	return &models.Course{
		Title:       form.Title.String(),
		CourseCode:  form.CourseCode.String(),
		Credits:     credits,
		Description: form.Description.Ptr(),
	}, nil
}

// CreateCourse validates and inserts a course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, form *dto.CourseForm) (*models.Course, error) {
	course, err := courseFromForm(form, MsgCourseCreateRequired)
	if err != nil {
		return nil, err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewConflictError(MsgCourseCodeTaken).WithField("courseCode")
		}
		s.logger.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Failed to create course")
		return nil, apperrors.NewDownstreamError(err, "Failed to create course")
	}

	s.logger.Info().Int64("courseID", course.ID).Str("courseCode", course.CourseCode).Msg("Course created")
	s.notifier.Revalidate(ctx, revalidate.PathDashboardCourses)
	return course, nil
}

// UpdateCourse replaces every mutable field of a course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, form *dto.CourseForm) (*models.Course, error) {
	id, ok := parseID(form.ID)
	if !ok {
		return nil, apperrors.NewValidationError(MsgCourseUpdateRequired)
	}
	course, err := courseFromForm(form, MsgCourseUpdateRequired)
	if err != nil {
		return nil, err
	}
	course.ID = id

	if err := s.courses.Update(ctx, course); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.NewConflictError(MsgCourseCodeTaken).WithField("courseCode")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError(MsgCourseNotFound)
		}
		s.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to update course")
		return nil, apperrors.NewDownstreamError(err, "Failed to update course")
	}

	s.logger.Info().Int64("courseID", id).Msg("Course updated")
	s.notifier.Revalidate(ctx, revalidate.PathDashboardCourses)
	return course, nil
}

// DeleteCourse deletes a course unless an enrollment references it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, form *dto.IDForm) error {
	id, ok := parseID(form.ID)
	if !ok {
		return apperrors.NewValidationError(MsgIDRequired)
	}

	if err := s.courses.DeleteUnreferenced(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrReferenced):
			s.logger.Warn().Int64("courseID", id).Msg("Refused to delete course with enrollments")
			return apperrors.NewDependentRecordsError(MsgCourseInUse)
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.NewNotFoundError(MsgCourseNotFound)
		}
		s.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to delete course")
		return apperrors.NewDownstreamError(err, "Failed to delete course")
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	s.notifier.Revalidate(ctx, revalidate.PathDashboardCourses)
	return nil
}

// GetCourse returns one course
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgCourseNotFound)
		}
		return nil, apperrors.NewDownstreamError(err, "Failed to load course")
	}
	return course, nil
}

// ListCourses returns every course ordered by code
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load courses")
	}
	return courses, nil
}

// ListEnrollments feeds the bulk withdrawal selection page
func (s *courseServiceImpl) ListEnrollments(ctx context.Context, courseID int64, status string) ([]*models.StudentCourse, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	filter := models.EnrollmentFilter{CourseID: courseID}
	if status != "" {
		st := models.EnrollmentStatus(status)
		if !st.Valid() {
			return nil, apperrors.NewValidationError("Invalid enrollment status").WithField("status")
		}
		filter.Status = st
	}

	enrollments, err := s.enrollments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load enrollments")
	}
	return enrollments, nil
}
