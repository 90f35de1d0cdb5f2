package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

// Bulk withdrawal messages
const (
	MsgBulkRequired     = "Course ID, student IDs, and withdrawal date are required"
	MsgBulkInvalidIDs   = "Invalid student IDs format"
	MsgBulkNoneSelected = "No students selected"
	MsgBulkFetchFailed  = "Failed to fetch student course record"
	MsgBulkNotActive    = "Student is not actively enrolled in this course"
	MsgBulkCreateFailed = "Failed to create withdrawal record"
	MsgBulkStatusFailed = "Failed to update enrollment status"
	bulkReasonPrefix    = "Bulk withdrawal: "
	bulkUnknownStudent  = "Unknown"
)

// BulkWithdrawalStore is the storage the bulk processor needs
type BulkWithdrawalStore interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	// GetEnrollment returns the enrollment with StudentName populated.
	GetEnrollment(ctx context.Context, id int64) (*models.StudentCourse, error)
	CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	SetEnrollmentStatus(ctx context.Context, id int64, status models.EnrollmentStatus, at time.Time) error
}

// BulkWithdrawalRequest is a parsed bulk withdrawal submission
type BulkWithdrawalRequest struct {
	CourseID       int64
	EnrollmentIDs  []int64
	WithdrawalDate time.Time
	Reason         string
}

// ProcessBulkWithdrawal withdraws each enrollment in order and reports every
// item as succeeded or failed. One failing item never stops the others.
// When ctx is done, the items not yet processed are reported failed.
func ProcessBulkWithdrawal(ctx context.Context, store BulkWithdrawalStore, req BulkWithdrawalRequest, now Clock, log zerolog.Logger) *models.BulkWithdrawalResult {
	if now == nil {
		now = utcNow
	}
	result := models.NewBulkWithdrawalResult()

	if course, err := store.GetCourse(ctx, req.CourseID); err != nil {
		log.Warn().Err(err).Int64("courseID", req.CourseID).Msg("Bulk withdrawal course lookup failed")
	} else {
		log.Info().Int64("courseID", course.ID).Str("courseCode", course.CourseCode).Int("items", len(req.EnrollmentIDs)).Msg("Processing bulk withdrawal")
	}

	reason := req.Reason
	if strings.TrimSpace(reason) == "" {
		reason = noReasonProvided
	}
	reason = bulkReasonPrefix + reason

	for i, id := range req.EnrollmentIDs {
		if err := ctx.Err(); err != nil {
			for _, rest := range req.EnrollmentIDs[i:] {
				result.Fail(rest, bulkUnknownStudent, err.Error())
			}
			log.Warn().Err(err).Int("remaining", len(req.EnrollmentIDs)-i).Msg("Bulk withdrawal interrupted")
			break
		}

		if id <= 0 {
			result.Fail(id, bulkUnknownStudent, MsgBulkFetchFailed)
			continue
		}
		enrollment, err := store.GetEnrollment(ctx, id)
		if err != nil {
			log.Debug().Err(err).Int64("enrollmentID", id).Msg("Bulk withdrawal item lookup failed")
			result.Fail(id, bulkUnknownStudent, MsgBulkFetchFailed)
			continue
		}
		name := bulkUnknownStudent
		if enrollment.StudentName != nil && *enrollment.StudentName != "" {
			name = *enrollment.StudentName
		}

		if enrollment.Status != models.EnrollmentActive || enrollment.CourseID != req.CourseID {
			result.Fail(id, name, MsgBulkNotActive)
			continue
		}

		itemReason := reason
		enrollmentID := enrollment.ID
		withdrawal := &models.Withdrawal{
			StudentID:       enrollment.StudentID,
			CourseID:        req.CourseID,
			StudentCourseID: &enrollmentID,
			WithdrawalDate:  req.WithdrawalDate,
			Reason:          &itemReason,
			Status:          models.WithdrawalApproved,
		}
		if err := store.CreateWithdrawal(ctx, withdrawal); err != nil {
			log.Error().Err(err).Int64("enrollmentID", id).Msg("Bulk withdrawal insert failed")
			result.Fail(id, name, MsgBulkCreateFailed)
			continue
		}

		if err := store.SetEnrollmentStatus(ctx, enrollment.ID, models.EnrollmentWithdrawn, now()); err != nil {
			log.Error().Err(err).Int64("enrollmentID", id).Int64("withdrawalID", withdrawal.ID).Msg("Bulk withdrawal status update failed")
			result.Fail(id, name, MsgBulkStatusFailed)
			continue
		}

		result.Succeed(id)
	}

	return result
}

// ParseEnrollmentIDs decodes the studentIds field: a JSON array of ids.
// Elements may be numbers or numeric strings. An element that is not an
// integer is kept as id 0 so the processor reports it as unfetchable.
func ParseEnrollmentIDs(raw dto.FormValue) ([]int64, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw.String())))
	dec.UseNumber()

	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return nil, apperrors.NewValidationError(MsgBulkInvalidIDs).WithField("studentIds")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperrors.NewValidationError(MsgBulkInvalidIDs).WithField("studentIds")
	}
	items, ok := decoded.([]interface{})
	if !ok || len(items) == 0 {
		return nil, apperrors.NewValidationError(MsgBulkNoneSelected).WithField("studentIds")
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		var text string
		switch v := item.(type) {
		case json.Number:
			text = v.String()
		case string:
			text = strings.TrimSpace(v)
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			id = 0
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// storeBulkAdapter serves the bulk processor from the repository store
type storeBulkAdapter struct {
	store *repositories.Store
}

func (a storeBulkAdapter) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return a.store.Courses.GetByID(ctx, id)
}

func (a storeBulkAdapter) GetEnrollment(ctx context.Context, id int64) (*models.StudentCourse, error) {
	return a.store.Enrollments.GetByID(ctx, id)
}

func (a storeBulkAdapter) CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	return a.store.Withdrawals.Create(ctx, withdrawal)
}

func (a storeBulkAdapter) SetEnrollmentStatus(ctx context.Context, id int64, status models.EnrollmentStatus, at time.Time) error {
	return a.store.Enrollments.SetStatus(ctx, id, status, at)
}

// BulkWithdrawalService validates bulk submissions and runs the processor
type BulkWithdrawalService interface {
	// Process runs a bulk withdrawal. courseID comes from the route and wins
	// over the form's courseId, which is only read when courseID is blank.
	Process(ctx context.Context, courseID string, form *dto.BulkWithdrawalForm) (*models.BulkWithdrawalResult, error)
}

type bulkWithdrawalServiceImpl struct {
	store    BulkWithdrawalStore
	notifier revalidate.Notifier
	logger   zerolog.Logger
	now      Clock
}

// NewBulkWithdrawalService creates a bulk withdrawal service over the store
func NewBulkWithdrawalService(store *repositories.Store, notifier revalidate.Notifier, logger zerolog.Logger) BulkWithdrawalService {
	return &bulkWithdrawalServiceImpl{
		store:    storeBulkAdapter{store: store},
		notifier: notifier,
		logger:   logger.With().Str("service", "bulk_withdrawal").Logger(),
		now:      utcNow,
	}
}

func (s *bulkWithdrawalServiceImpl) Process(ctx context.Context, courseID string, form *dto.BulkWithdrawalForm) (*models.BulkWithdrawalResult, error) {
	courseField := dto.FormValue(courseID)
	if courseField.Empty() {
		courseField = form.CourseID
	}
	if courseField.Empty() || form.StudentIDs.Empty() || form.WithdrawalDate.Empty() {
		return nil, apperrors.NewValidationError(MsgBulkRequired)
	}
	cid, ok := parseID(courseField)
	date, dateOK := parseDate(form.WithdrawalDate)
	if !ok || !dateOK {
		return nil, apperrors.NewValidationError(MsgBulkRequired)
	}
	ids, err := ParseEnrollmentIDs(form.StudentIDs)
	if err != nil {
		return nil, err
	}

	result := ProcessBulkWithdrawal(ctx, s.store, BulkWithdrawalRequest{
		CourseID:       cid,
		EnrollmentIDs:  ids,
		WithdrawalDate: date,
		Reason:         form.Reason.String(),
	}, s.now, s.logger)

	s.logger.Info().
		Int64("courseID", cid).
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Msg("Bulk withdrawal processed")
	s.notifier.Revalidate(ctx, revalidate.PathDashboardCourses, revalidate.PathDashboardUsers)
	return result, nil
}
