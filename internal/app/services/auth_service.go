package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/auth"
	"github.com/yigit/campusportal/internal/pkg/validation"
)

// AuthService signs accounts up and in
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.Profile, error)
	// CreateAccount registers an account with an explicit role. Used by the seed and the admin CLI.
	CreateAccount(ctx context.Context, email, password, fullName string, role models.Role) (*models.Profile, error)
}

type authServiceImpl struct {
	identity   repositories.IdentityRepository
	profiles   repositories.ProfileRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
	now        Clock
}

// NewAuthService creates a new AuthService
func NewAuthService(
	identity repositories.IdentityRepository,
	profiles repositories.ProfileRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		identity:   identity,
		profiles:   profiles,
		jwtService: jwtService,
		logger:     logger.With().Str("service", "auth").Logger(),
		now:        utcNow,
	}
}

func validateCredentials(email, password, fullName string) error {
	if !validation.IsEmail(email) {
		return apperrors.NewValidationError("Invalid email address").WithField("email")
	}
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", validation.PasswordMinLength)).WithField("password")
	}
	name := validation.NewStringValidation(fullName).
		WithRequired(true).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength)
	if !name.Validate() {
		return apperrors.NewValidationError("Full name is required").WithField("fullName")
	}
	return nil
}

// CreateAccount hashes the password and stores the auth user with its profile
func (s *authServiceImpl) CreateAccount(ctx context.Context, email, password, fullName string, role models.Role) (*models.Profile, error) {
	email = validation.NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if err := validateCredentials(email, password, fullName); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role").WithField("role")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.NewString()
	user := &models.AuthUser{ID: id, Email: email, PasswordHash: hash}
	profile := &models.Profile{ID: id, Email: email, FullName: fullName, Role: role, IsActive: true}

	if err := s.identity.CreateAccount(ctx, user, profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewConflictError("User already registered").WithField("email")
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create account")
		return nil, apperrors.NewDownstreamError(err, "Failed to create account")
	}

	s.logger.Info().Str("userID", id).Str("role", string(role)).Msg("Account created")
	return profile, nil
}

// SignUp registers a student account and opens a session
func (s *authServiceImpl) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	profile, err := s.CreateAccount(ctx, req.Email, req.Password, req.FullName, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, profile)
}

// SignIn checks the credentials and opens a session
func (s *authServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	email := validation.NormalizeEmail(req.Email)
	invalid := apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid login credentials")

	user, err := s.identity.GetAuthUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, invalid
		}
		return nil, apperrors.NewDownstreamError(err, "Failed to sign in")
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("userID", user.ID).Msg("Sign-in with wrong password")
		return nil, invalid
	}

	profile, err := s.profiles.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, invalid
		}
		return nil, apperrors.NewDownstreamError(err, "Failed to sign in")
	}
	if !profile.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "Account is disabled")
	}

	if err := s.identity.TouchSignIn(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to record sign-in time")
	}
	return s.openSession(ctx, profile)
}

func (s *authServiceImpl) openSession(_ context.Context, profile *models.Profile) (*dto.AuthResponse, error) {
	session, err := s.jwtService.IssueSession(profile.ID, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: session.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   session.ExpiresIn,
		},
		User: profile,
	}, nil
}

// Me returns the caller's profile
func (s *authServiceImpl) Me(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Profile not found")
		}
		return nil, apperrors.NewDownstreamError(err, "Failed to load profile")
	}
	return profile, nil
}

