// Package seed creates the default administrator and sample catalogue.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/validation"
)

// Options selects the default data
type Options struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
	SampleCourses bool
}

var sampleCourses = []models.Course{
	{CourseCode: "CS101", Title: "Introduction to Programming", Credits: 4},
	{CourseCode: "MATH201", Title: "Linear Algebra", Credits: 3},
	{CourseCode: "PHYS110", Title: "General Physics I", Credits: 4},
	{CourseCode: "ECON100", Title: "Principles of Economics", Credits: 3},
}

// CreateDefaultData ensures the default admin and the sample courses exist.
// Rows already present are left untouched; every failure is collected and
// the remaining steps still run.
func CreateDefaultData(ctx context.Context, store *repositories.Store, accounts services.AuthService, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		lgr.Warn().Msg("No default admin configured, skipping")
	} else if _, _, err := EnsureAdmin(ctx, store, accounts, opts.AdminEmail, opts.AdminName, opts.AdminPassword, lgr); err != nil {
		lgr.Error().Err(err).Str("email", opts.AdminEmail).Msg("Error creating default admin")
		finalErr = errors.Join(finalErr, err)
	}

	if opts.SampleCourses {
		created := 0
		for _, c := range sampleCourses {
			course := c
			err := store.Courses.Create(ctx, &course)
			switch {
			case err == nil:
				created++
			case errors.Is(err, repositories.ErrDuplicate):
			default:
				lgr.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Error creating sample course")
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Int("created", created).Msg("Sample courses checked")
	}

	return finalErr
}

// EnsureAdmin creates an admin account, or promotes the existing account
// with that email. The password of an existing account is not changed.
func EnsureAdmin(ctx context.Context, store *repositories.Store, accounts services.AuthService, email, name, password string, lgr zerolog.Logger) (*models.Profile, bool, error) {
	profile, err := accounts.CreateAccount(ctx, email, password, name, models.RoleAdmin)
	if err == nil {
		lgr.Info().Str("userID", profile.ID).Msg("Default admin created")
		return profile, true, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, false, err
	}

	user, err := store.Identity.GetAuthUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up existing account: %w", err)
	}
	if err := store.Profiles.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return nil, false, fmt.Errorf("failed to promote existing account: %w", err)
	}
	profile, err = store.Profiles.GetByID(ctx, user.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload profile: %w", err)
	}

	lgr.Info().Str("userID", profile.ID).Msg("Existing account has the admin role")
	return profile, false, nil
}
