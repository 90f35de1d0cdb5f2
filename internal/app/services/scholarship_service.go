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

const (
	MsgScholarshipNotFound = "Scholarship not found"
	MsgStudentNotFound     = "Student not found"
)

// ScholarshipService manages student scholarships
type ScholarshipService interface {
	CreateScholarship(ctx context.Context, form *dto.ScholarshipForm) (*models.Scholarship, error)
	UpdateScholarship(ctx context.Context, form *dto.ScholarshipForm) (*models.Scholarship, error)
	// DeleteScholarship returns the id of the student who held the scholarship.
	DeleteScholarship(ctx context.Context, form *dto.IDForm) (string, error)
	ListScholarships(ctx context.Context, studentID string) ([]*models.Scholarship, error)
}

type scholarshipServiceImpl struct {
	scholarships repositories.ScholarshipRepository
	notifier     revalidate.Notifier
	logger       zerolog.Logger
}

// NewScholarshipService creates a new scholarship service instance
func NewScholarshipService(scholarships repositories.ScholarshipRepository, notifier revalidate.Notifier, logger zerolog.Logger) ScholarshipService {
	return &scholarshipServiceImpl{
		scholarships: scholarships,
		notifier:     notifier,
		logger:       logger.With().Str("service", "scholarship").Logger(),
	}
}

func scholarshipFromForm(form *dto.ScholarshipForm) (*models.Scholarship, error) {
	amount, amountOK := parseAmount(form.Amount)
	start, startOK := parseDate(form.StartDate)
	end, endOK := parseDate(form.EndDate)
	if form.StudentID.Empty() || form.Name.Empty() || form.Status.Empty() || !amountOK || !startOK || !endOK {
		return nil, apperrors.NewValidationError(MsgMissingFields)
	}
	return &models.Scholarship{
		StudentID:   form.StudentID.String(),
		Name:        form.Name.String(),
		Amount:      amount,
		StartDate:   start,
		EndDate:     end,
		Status:      form.Status.String(),
		Description: form.Description.Ptr(),
	}, nil
}

func (s *scholarshipServiceImpl) CreateScholarship(ctx context.Context, form *dto.ScholarshipForm) (*models.Scholarship, error) {
	scholarship, err := scholarshipFromForm(form)
	if err != nil {
		return nil, err
	}

	if err := s.scholarships.Create(ctx, scholarship); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgStudentNotFound)
		}
		s.logger.Error().Err(err).Str("studentID", scholarship.StudentID).Msg("Failed to create scholarship")
		return nil, apperrors.NewDownstreamError(err, "Failed to create scholarship")
	}

	s.logger.Info().Int64("scholarshipID", scholarship.ID).Str("studentID", scholarship.StudentID).Msg("Scholarship created")
	s.notifier.Revalidate(ctx, revalidate.UserPath(scholarship.StudentID))
	return scholarship, nil
}

func (s *scholarshipServiceImpl) UpdateScholarship(ctx context.Context, form *dto.ScholarshipForm) (*models.Scholarship, error) {
	id, ok := parseID(form.ID)
	if !ok {
		return nil, apperrors.NewValidationError(MsgMissingFields)
	}
	scholarship, err := scholarshipFromForm(form)
	if err != nil {
		return nil, err
	}
	scholarship.ID = id

	if err := s.scholarships.Update(ctx, scholarship); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgScholarshipNotFound)
		}
		s.logger.Error().Err(err).Int64("scholarshipID", id).Msg("Failed to update scholarship")
		return nil, apperrors.NewDownstreamError(err, "Failed to update scholarship")
	}

	s.logger.Info().Int64("scholarshipID", id).Msg("Scholarship updated")
	s.notifier.Revalidate(ctx, revalidate.UserPath(scholarship.StudentID))
	return scholarship, nil
}

func (s *scholarshipServiceImpl) DeleteScholarship(ctx context.Context, form *dto.IDForm) (string, error) {
	id, ok := parseID(form.ID)
	if !ok {
		return "", apperrors.NewValidationError(MsgIDRequired)
	}

	studentID, err := s.scholarships.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.NewNotFoundError(MsgScholarshipNotFound)
		}
		s.logger.Error().Err(err).Int64("scholarshipID", id).Msg("Failed to delete scholarship")
		return "", apperrors.NewDownstreamError(err, "Failed to delete scholarship")
	}

	s.logger.Info().Int64("scholarshipID", id).Str("studentID", studentID).Msg("Scholarship deleted")
	s.notifier.Revalidate(ctx, revalidate.UserPath(studentID))
	return studentID, nil
}

func (s *scholarshipServiceImpl) ListScholarships(ctx context.Context, studentID string) ([]*models.Scholarship, error) {
	scholarships, err := s.scholarships.List(ctx, studentID)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load scholarships")
	}
	return scholarships, nil
}
