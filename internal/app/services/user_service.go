package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/helpers"
)

const MsgUserNotFound = "User not found"

// UserService serves the dashboard user pages and the student cabinet
type UserService interface {
	ListUsers(ctx context.Context, filter dto.UserFilter, page, pageSize int) (*dto.UserListResponse, error)
	GetUserDetail(ctx context.Context, id string) (*dto.UserDetailResponse, error)
	MyCourses(ctx context.Context, userID string) ([]*models.StudentCourse, error)
	MyWithdrawals(ctx context.Context, userID string) ([]*models.Withdrawal, error)
	MyScholarships(ctx context.Context, userID string) ([]*models.Scholarship, error)
	MyAllowances(ctx context.Context, userID string) ([]*models.Allowance, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	store  *repositories.Store
	logger zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(store *repositories.Store, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		store:  store,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// ListUsers returns one page of profiles, newest first
func (s *userServiceImpl) ListUsers(ctx context.Context, filter dto.UserFilter, page, pageSize int) (*dto.UserListResponse, error) {
	role := models.Role(filter.Role)
	if role != "" && !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role").WithField("role")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	users, total, err := s.store.Profiles.List(ctx, repositories.ProfileFilter{
		Query: filter.Query,
		Role:  role,
	}, models.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		return nil, apperrors.NewDownstreamError(err, "Failed to load users")
	}

	return &dto.UserListResponse{
		Users:      users,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetUserDetail gathers the profile with its enrollments, withdrawals and finances
func (s *userServiceImpl) GetUserDetail(ctx context.Context, id string) (*dto.UserDetailResponse, error) {
	profile, err := s.store.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgUserNotFound)
		}
		return nil, apperrors.NewDownstreamError(err, "Failed to load user")
	}

	detail := &dto.UserDetailResponse{Profile: profile}
	if detail.Enrollments, err = s.MyCourses(ctx, id); err != nil {
		return nil, err
	}
	if detail.Withdrawals, err = s.MyWithdrawals(ctx, id); err != nil {
		return nil, err
	}
	if detail.Scholarships, err = s.MyScholarships(ctx, id); err != nil {
		return nil, err
	}
	if detail.Allowances, err = s.MyAllowances(ctx, id); err != nil {
		return nil, err
	}
	return detail, nil
}

// MyCourses lists every enrollment of the user with its course
func (s *userServiceImpl) MyCourses(ctx context.Context, userID string) ([]*models.StudentCourse, error) {
	enrollments, err := s.store.Enrollments.List(ctx, models.EnrollmentFilter{StudentID: userID})
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load courses")
	}
	return enrollments, nil
}

func (s *userServiceImpl) MyWithdrawals(ctx context.Context, userID string) ([]*models.Withdrawal, error) {
	withdrawals, err := s.store.Withdrawals.List(ctx, models.WithdrawalFilter{StudentID: userID})
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load withdrawals")
	}
	return withdrawals, nil
}

func (s *userServiceImpl) MyScholarships(ctx context.Context, userID string) ([]*models.Scholarship, error) {
	scholarships, err := s.store.Scholarships.List(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load scholarships")
	}
	return scholarships, nil
}

func (s *userServiceImpl) MyAllowances(ctx context.Context, userID string) ([]*models.Allowance, error) {
	allowances, err := s.store.Allowances.List(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load allowances")
	}
	return allowances, nil
}
