package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appAuth "github.com/yigit/campusportal/internal/app/auth"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

// Withdrawal messages
const (
	MsgWithdrawalRequired      = "Student ID, course ID, and withdrawal date are required"
	MsgPendingWithdrawalExists = "There is already a pending withdrawal request for this course"
	MsgWithdrawalStatusInvalid = "ID and valid status are required"
	MsgWithdrawalNotFound      = "Withdrawal request not found"
	MsgWithdrawalProcessed     = "Withdrawal request has already been processed"

	adminReasonPrefix = "Admin initiated: "
	noReasonProvided  = "No reason provided"
)

// WithdrawalService handles course withdrawal requests
type WithdrawalService interface {
	// RequestWithdrawal files a pending request. Students may only file for themselves.
	RequestWithdrawal(ctx context.Context, caller *models.Profile, form *dto.WithdrawalForm) (*models.Withdrawal, error)
	// AdminWithdraw records an approved withdrawal and withdraws the enrollment at once.
	AdminWithdraw(ctx context.Context, form *dto.WithdrawalForm) (*models.Withdrawal, error)
	UpdateStatus(ctx context.Context, form *dto.WithdrawalStatusForm) (*models.Withdrawal, error)
	// DeleteWithdrawal is allowed to admins and to the student owning the row.
	DeleteWithdrawal(ctx context.Context, caller *models.Profile, form *dto.IDForm) error
	ListWithdrawals(ctx context.Context, filter models.WithdrawalFilter) ([]*models.Withdrawal, error)
}

type withdrawalServiceImpl struct {
	withdrawals repositories.WithdrawalRepository
	enrollments repositories.EnrollmentRepository
	notifier    revalidate.Notifier
	logger      zerolog.Logger
	now         Clock
}

// NewWithdrawalService creates a new withdrawal service instance
func NewWithdrawalService(
	withdrawals repositories.WithdrawalRepository,
	enrollments repositories.EnrollmentRepository,
	notifier revalidate.Notifier,
	logger zerolog.Logger,
) WithdrawalService {
	return &withdrawalServiceImpl{
		withdrawals: withdrawals,
		enrollments: enrollments,
		notifier:    notifier,
		logger:      logger.With().Str("service", "withdrawal").Logger(),
		now:         utcNow,
	}
}

type withdrawalInput struct {
	studentID string
	courseID  int64
	form      *dto.WithdrawalForm
}

func parseWithdrawalForm(form *dto.WithdrawalForm) (*withdrawalInput, *models.Withdrawal, error) {
	if form.StudentID.Empty() || form.CourseID.Empty() || form.WithdrawalDate.Empty() {
		return nil, nil, apperrors.NewValidationError(MsgWithdrawalRequired)
	}
	courseID, ok := parseID(form.CourseID)
	date, dateOK := parseDate(form.WithdrawalDate)
	if !ok || !dateOK {
		return nil, nil, apperrors.NewValidationError(MsgWithdrawalRequired)
	}
	in := &withdrawalInput{studentID: form.StudentID.String(), courseID: courseID, form: form}
	return in, &models.Withdrawal{StudentID: in.studentID, CourseID: courseID, WithdrawalDate: date}, nil
}

// activeEnrollment returns the active enrollment of the pair or a not-found error
func (s *withdrawalServiceImpl) activeEnrollment(ctx context.Context, in *withdrawalInput, failure string) (*models.StudentCourse, error) {
	enrollment, err := s.enrollments.FindActive(ctx, in.studentID, in.courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgStudentNotEnrolled)
		}
		return nil, apperrors.NewDownstreamError(err, failure)
	}
	return enrollment, nil
}

// RequestWithdrawal files a pending withdrawal for an active enrollment
func (s *withdrawalServiceImpl) RequestWithdrawal(ctx context.Context, caller *models.Profile, form *dto.WithdrawalForm) (*models.Withdrawal, error) {
	const failure = "Failed to create withdrawal request"

	in, withdrawal, err := parseWithdrawalForm(form)
	if err != nil {
		return nil, err
	}

	if caller.Role == models.RoleStudent && caller.ID != in.studentID {
		s.logger.Warn().Str("callerID", caller.ID).Str("studentID", in.studentID).Msg("Student filed a withdrawal for someone else")
		return nil, apperrors.NewForbiddenError(appAuth.MsgNotAuthorized)
	}

	enrollment, err := s.activeEnrollment(ctx, in, failure)
	if err != nil {
		return nil, err
	}

	pending, err := s.withdrawals.List(ctx, models.WithdrawalFilter{
		StudentID: in.studentID,
		CourseID:  in.courseID,
		Status:    models.WithdrawalPending,
	})
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, failure)
	}
	if len(pending) > 0 {
		return nil, apperrors.NewConflictError(MsgPendingWithdrawalExists)
	}

	withdrawal.StudentCourseID = &enrollment.ID
	withdrawal.Reason = form.Reason.Ptr()
	withdrawal.Status = models.WithdrawalPending
	if err := s.withdrawals.Create(ctx, withdrawal); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			// lost the race against a concurrent request for the same pair
			return nil, apperrors.NewConflictError(MsgPendingWithdrawalExists)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError(MsgStudentNotEnrolled)
		}
		s.logger.Error().Err(err).Str("studentID", in.studentID).Int64("courseID", in.courseID).Msg(failure)
		return nil, apperrors.NewDownstreamError(err, failure)
	}

	s.logger.Info().Int64("withdrawalID", withdrawal.ID).Str("studentID", in.studentID).Int64("courseID", in.courseID).Msg("Withdrawal requested")
	s.notifier.Revalidate(ctx, revalidate.UserPath(in.studentID))
	return withdrawal, nil
}

// AdminWithdraw inserts an approved withdrawal and then withdraws the
// enrollment. The two writes are not transactional: when the second fails
// the approved row stays and the error is reported.
func (s *withdrawalServiceImpl) AdminWithdraw(ctx context.Context, form *dto.WithdrawalForm) (*models.Withdrawal, error) {
	const failure = "Failed to process administrative withdrawal"

	in, withdrawal, err := parseWithdrawalForm(form)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.activeEnrollment(ctx, in, failure)
	if err != nil {
		return nil, err
	}

	reason := form.Reason.String()
	if reason == "" {
		reason = noReasonProvided
	}
	reason = adminReasonPrefix + reason
	withdrawal.Reason = &reason
	withdrawal.Status = models.WithdrawalApproved
	withdrawal.StudentCourseID = &enrollment.ID

	if err := s.withdrawals.Create(ctx, withdrawal); err != nil {
		s.logger.Error().Err(err).Str("studentID", in.studentID).Int64("courseID", in.courseID).Msg("Failed to insert administrative withdrawal")
		return nil, apperrors.NewDownstreamError(err, failure)
	}

	if err := s.enrollments.SetStatus(ctx, enrollment.ID, models.EnrollmentWithdrawn, s.now()); err != nil {
		s.logger.Error().Err(err).
			Int64("withdrawalID", withdrawal.ID).
			Int64("enrollmentID", enrollment.ID).
			Msg("Approved withdrawal recorded but enrollment is still active")
		return nil, apperrors.NewDownstreamError(err, failure)
	}

	s.logger.Info().Int64("withdrawalID", withdrawal.ID).Int64("enrollmentID", enrollment.ID).Msg("Administrative withdrawal processed")
	s.notifier.Revalidate(ctx, revalidate.UserPath(in.studentID), revalidate.PathDashboardUsers)
	return withdrawal, nil
}

// UpdateStatus approves or rejects a pending withdrawal. Approval withdraws
// the linked enrollment; rows filed before enrollments were linked fall back
// to every active enrollment of the pair.
func (s *withdrawalServiceImpl) UpdateStatus(ctx context.Context, form *dto.WithdrawalStatusForm) (*models.Withdrawal, error) {
	const failure = "Failed to update withdrawal status"

	id, ok := parseID(form.ID)
	status := models.WithdrawalStatus(form.Status.String())
	if !ok || (status != models.WithdrawalApproved && status != models.WithdrawalRejected) {
		return nil, apperrors.NewValidationError(MsgWithdrawalStatusInvalid)
	}

	withdrawal, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgWithdrawalNotFound)
		}
		return nil, apperrors.NewDownstreamError(err, failure)
	}
	if !withdrawal.Status.CanTransitionTo(status) {
		return nil, apperrors.NewConflictError(MsgWithdrawalProcessed)
	}

	now := s.now()
	if err := s.withdrawals.Transition(ctx, id, models.WithdrawalPending, status, now); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStaleState):
			return nil, apperrors.NewConflictError(MsgWithdrawalProcessed)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError(MsgWithdrawalNotFound)
		}
		s.logger.Error().Err(err).Int64("withdrawalID", id).Msg(failure)
		return nil, apperrors.NewDownstreamError(err, failure)
	}
	withdrawal.Status = status
	withdrawal.UpdatedAt = now

	if status == models.WithdrawalApproved {
		if err := s.withdrawEnrollment(ctx, withdrawal, now); err != nil {
			s.logger.Error().Err(err).Int64("withdrawalID", id).Msg("Withdrawal approved but enrollment update failed")
			return nil, apperrors.NewDownstreamError(err, failure)
		}
	}

	s.logger.Info().Int64("withdrawalID", id).Str("status", string(status)).Msg("Withdrawal status updated")
	s.notifier.Revalidate(ctx, revalidate.UserPath(withdrawal.StudentID), revalidate.PathDashboardUsers)
	return withdrawal, nil
}

func (s *withdrawalServiceImpl) withdrawEnrollment(ctx context.Context, w *models.Withdrawal, at time.Time) error {
	if w.StudentCourseID != nil {
		err := s.enrollments.SetStatus(ctx, *w.StudentCourseID, models.EnrollmentWithdrawn, at)
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
	}
	n, err := s.enrollments.WithdrawActiveByPair(ctx, w.StudentID, w.CourseID, at)
	if err != nil {
		return err
	}
	if n > 1 {
		s.logger.Warn().Int64("withdrawalID", w.ID).Int64("rows", n).Msg("Approval withdrew several active enrollments of the same pair")
	}
	return nil
}

// DeleteWithdrawal removes a withdrawal row. Ownership is checked against the stored row.
func (s *withdrawalServiceImpl) DeleteWithdrawal(ctx context.Context, caller *models.Profile, form *dto.IDForm) error {
	const failure = "Failed to delete withdrawal request"

	id, ok := parseID(form.ID)
	if !ok {
		return apperrors.NewValidationError(MsgIDRequired)
	}

	withdrawal, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgWithdrawalNotFound)
		}
		return apperrors.NewDownstreamError(err, failure)
	}
	if !appAuth.CanActOnStudent(caller, withdrawal.StudentID) {
		s.logger.Warn().Str("callerID", caller.ID).Int64("withdrawalID", id).Msg("Refused to delete another student's withdrawal")
		return apperrors.NewForbiddenError(appAuth.MsgNotAuthorized)
	}

	if err := s.withdrawals.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgWithdrawalNotFound)
		}
		s.logger.Error().Err(err).Int64("withdrawalID", id).Msg(failure)
		return apperrors.NewDownstreamError(err, failure)
	}

	s.logger.Info().Int64("withdrawalID", id).Str("callerID", caller.ID).Msg("Withdrawal deleted")
	s.notifier.Revalidate(ctx, revalidate.UserPath(withdrawal.StudentID), revalidate.PathDashboardUsers)
	return nil
}

// ListWithdrawals returns withdrawals newest first
func (s *withdrawalServiceImpl) ListWithdrawals(ctx context.Context, filter models.WithdrawalFilter) ([]*models.Withdrawal, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("Invalid withdrawal status").WithField("status")
	}
	withdrawals, err := s.withdrawals.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load withdrawals")
	}
	return withdrawals, nil
}
