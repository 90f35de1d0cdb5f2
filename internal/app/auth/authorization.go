// Package auth holds the role gate every privileged operation goes through.
package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

// Gate messages
const (
	MsgNotAuthenticated = "Not authenticated"
	MsgNotAuthorized    = "Not authorized"
)

// Authorizer resolves the caller's profile and checks its role
type Authorizer interface {
	Authorize(ctx context.Context, userID string, allowed ...models.Role) (*models.Profile, error)
}

// AuthorizationService reads the caller's role from the profile store on
// every call; roles are never cached.
type AuthorizationService struct {
	profiles repositories.ProfileRepository
	log      zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(profiles repositories.ProfileRepository, log zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{
		profiles: profiles,
		log:      log.With().Str("component", "authorization").Logger(),
	}
}

// Authorize returns the caller's profile when its role is one of allowed.
// An empty allowed list accepts any role. A missing or unreadable profile
// counts as not authorized.
func (s *AuthorizationService) Authorize(ctx context.Context, userID string, allowed ...models.Role) (*models.Profile, error) {
	if userID == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrNotAuthenticated, MsgNotAuthenticated)
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.log.Error().Err(err).Str("userID", userID).Msg("Profile lookup failed during authorization")
		}
		s.log.Warn().Str("userID", userID).Msg("Authorization denied: no profile")
		return nil, apperrors.NewForbiddenError(MsgNotAuthorized)
	}

	if !profile.IsActive {
		s.log.Warn().Str("userID", userID).Msg("Authorization denied: profile disabled")
		return nil, apperrors.NewForbiddenError(MsgNotAuthorized)
	}

	if len(allowed) > 0 && !profile.HasRole(allowed...) {
		s.log.Warn().
			Str("userID", userID).
			Str("role", string(profile.Role)).
			Interface("allowed", allowed).
			Msg("Authorization denied: role not allowed")
		return nil, apperrors.NewForbiddenError(MsgNotAuthorized)
	}

	return profile, nil
}

// CanActOnStudent reports whether the caller may act on studentID's own
// records: admins always, anyone else only on themselves.
func CanActOnStudent(caller *models.Profile, studentID string) bool {
	if caller == nil {
		return false
	}
	return caller.Role == models.RoleAdmin || caller.ID == studentID
}
