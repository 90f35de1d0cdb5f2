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

const MsgAllowanceNotFound = "Allowance not found"

// AllowanceService manages allowance payments to students
type AllowanceService interface {
	CreateAllowance(ctx context.Context, form *dto.AllowanceForm) (*models.Allowance, error)
	UpdateAllowance(ctx context.Context, form *dto.AllowanceForm) (*models.Allowance, error)
	DeleteAllowance(ctx context.Context, form *dto.IDForm) (string, error)
	ListAllowances(ctx context.Context, studentID string) ([]*models.Allowance, error)
}

type allowanceServiceImpl struct {
	allowances repositories.AllowanceRepository
	notifier     revalidate.Notifier
	logger       zerolog.Logger
}

// NewAllowanceService creates a new allowance service instance
func NewAllowanceService(allowances repositories.AllowanceRepository, notifier revalidate.Notifier, logger zerolog.Logger) AllowanceService {
	return &allowanceServiceImpl{
		allowances: allowances,
		notifier:     notifier,
		logger:       logger.With().Str("service", "allowance").Logger(),
	}
}

func allowanceFromForm(form *dto.AllowanceForm) (*models.Allowance, error) {
	amount, amountOK := parseAmount(form.Amount)
	paidOn, dateOK := parseDate(form.PaymentDate)
	if form.StudentID.Empty() || form.Type.Empty() || form.Status.Empty() || !amountOK || !dateOK {
		return nil, apperrors.NewValidationError(MsgMissingFields)
	}
	return &models.Allowance{
		StudentID:   form.StudentID.String(),
		Type:        form.Type.String(),
		Amount:      amount,
		PaymentDate: paidOn,
		Status:      form.Status.String(),
		Description: form.Description.Ptr(),
	}, nil
}

func (s *allowanceServiceImpl) CreateAllowance(ctx context.Context, form *dto.AllowanceForm) (*models.Allowance, error) {
	allowance, err := allowanceFromForm(form)
	if err != nil {
		return nil, err
	}

	if err := s.allowances.Create(ctx, allowance); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgStudentNotFound)
		}
		s.logger.Error().Err(err).Str("studentID", allowance.StudentID).Msg("Failed to create allowance")
		return nil, apperrors.NewDownstreamError(err, "Failed to create allowance")
	}

	s.logger.Info().Int64("allowanceID", allowance.ID).Str("studentID", allowance.StudentID).Msg("Allowance created")
	s.notifier.Revalidate(ctx, revalidate.UserPath(allowance.StudentID))
	return allowance, nil
}

func (s *allowanceServiceImpl) UpdateAllowance(ctx context.Context, form *dto.AllowanceForm) (*models.Allowance, error) {
	id, ok := parseID(form.ID)
	if !ok {
		return nil, apperrors.NewValidationError(MsgMissingFields)
	}
	allowance, err := allowanceFromForm(form)
	if err != nil {
		return nil, err
	}
	allowance.ID = id

	if err := s.allowances.Update(ctx, allowance); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgAllowanceNotFound)
		}
		s.logger.Error().Err(err).Int64("allowanceID", id).Msg("Failed to update allowance")
		return nil, apperrors.NewDownstreamError(err, "Failed to update allowance")
	}

	s.logger.Info().Int64("allowanceID", id).Msg("Allowance updated")
	s.notifier.Revalidate(ctx, revalidate.UserPath(allowance.StudentID))
	return allowance, nil
}

func (s *allowanceServiceImpl) DeleteAllowance(ctx context.Context, form *dto.IDForm) (string, error) {
	id, ok := parseID(form.ID)
	if !ok {
		return "", apperrors.NewValidationError(MsgIDRequired)
	}

	studentID, err := s.allowances.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.NewNotFoundError(MsgAllowanceNotFound)
		}
		s.logger.Error().Err(err).Int64("allowanceID", id).Msg("Failed to delete allowance")
		return "", apperrors.NewDownstreamError(err, "Failed to delete allowance")
	}

	s.logger.Info().Int64("allowanceID", id).Str("studentID", studentID).Msg("Allowance deleted")
	s.notifier.Revalidate(ctx, revalidate.UserPath(studentID))
	return studentID, nil
}

func (s *allowanceServiceImpl) ListAllowances(ctx context.Context, studentID string) ([]*models.Allowance, error) {
	allowances, err := s.allowances.List(ctx, studentID)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load allowances")
	}
	return allowances, nil
}
