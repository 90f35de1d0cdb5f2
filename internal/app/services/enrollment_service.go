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

// Enrollment messages
const (
	MsgEnrollmentRequired     = "Student ID, course ID, and enrollment date are required"
	MsgAlreadyEnrolled        = "Student is already enrolled in this course"
	MsgStudentCourseIDMissing = "Student course ID is required"
	MsgEnrollmentNotFound     = "Enrollment not found"
	MsgStudentOrCourseMissing = "Student or course not found"
)

// EnrollmentService assigns courses to students and removes them
type EnrollmentService interface {
	AssignCourse(ctx context.Context, form *dto.EnrollmentForm) (*models.StudentCourse, error)
	RemoveCourse(ctx context.Context, form *dto.IDForm) error
	// RemoveStudent backs the internal JSON endpoint of the course roster.
	RemoveStudent(ctx context.Context, req *dto.RemoveStudentRequest) error
}

type enrollmentServiceImpl struct {
	enrollments repositories.EnrollmentRepository
	notifier    revalidate.Notifier
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollments repositories.EnrollmentRepository, notifier revalidate.Notifier, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollments: enrollments,
		notifier:    notifier,
		logger:      logger.With().Str("service", "enrollment").Logger(),
	}
}

// AssignCourse enrolls a student. A student holds at most one active
// enrollment per course; withdrawn or completed rows do not block.
func (s *enrollmentServiceImpl) AssignCourse(ctx context.Context, form *dto.EnrollmentForm) (*models.StudentCourse, error) {
	if form.StudentID.Empty() || form.CourseID.Empty() || form.EnrollmentDate.Empty() {
		return nil, apperrors.NewValidationError(MsgEnrollmentRequired)
	}
	courseID, ok := parseID(form.CourseID)
	enrolledOn, dateOK := parseDate(form.EnrollmentDate)
	if !ok || !dateOK {
		return nil, apperrors.NewValidationError(MsgEnrollmentRequired)
	}
	studentID := form.StudentID.String()

	if _, err := s.enrollments.FindActive(ctx, studentID, courseID); err == nil {
		return nil, apperrors.NewConflictError(MsgAlreadyEnrolled)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NewDownstreamError(err, "Failed to assign course to student")
	}

	enrollment := &models.StudentCourse{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: enrolledOn,
		Status:         models.EnrollmentActive,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.NewConflictError(MsgAlreadyEnrolled)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError(MsgStudentOrCourseMissing)
		}
		s.logger.Error().Err(err).Str("studentID", studentID).Int64("courseID", courseID).Msg("Failed to assign course")
		return nil, apperrors.NewDownstreamError(err, "Failed to assign course to student")
	}

	s.logger.Info().Int64("enrollmentID", enrollment.ID).Str("studentID", studentID).Int64("courseID", courseID).Msg("Course assigned")
	s.notifier.Revalidate(ctx, revalidate.UserPath(studentID))
	return enrollment, nil
}

// RemoveCourse deletes an enrollment row by id
func (s *enrollmentServiceImpl) RemoveCourse(ctx context.Context, form *dto.IDForm) error {
	id, ok := parseID(form.ID)
	if !ok {
		return apperrors.NewValidationError(MsgIDRequired)
	}
	return s.remove(ctx, id, "Failed to remove course from student")
}

// RemoveStudent deletes the enrollment named by enrollmentId or studentCourseId
func (s *enrollmentServiceImpl) RemoveStudent(ctx context.Context, req *dto.RemoveStudentRequest) error {
	id, ok := parseID(req.EnrollmentRef())
	if !ok {
		return apperrors.NewValidationError(MsgStudentCourseIDMissing)
	}
	return s.remove(ctx, id, "Failed to remove student from course")
}

func (s *enrollmentServiceImpl) remove(ctx context.Context, id int64, failure string) error {
	removed, err := s.enrollments.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgEnrollmentNotFound)
		}
		s.logger.Error().Err(err).Int64("enrollmentID", id).Msg(failure)
		return apperrors.NewDownstreamError(err, failure)
	}

	s.logger.Info().Int64("enrollmentID", id).Str("studentID", removed.StudentID).Msg("Enrollment removed")
	s.notifier.Revalidate(ctx, revalidate.PathDashboardUsers, revalidate.UserPath(removed.StudentID))
	return nil
}
