package seed

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/app/repositories/memory"
	"github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/pkg/auth"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = 4
	os.Exit(m.Run())
}

func newAccounts(t *testing.T) (*repositories.Store, services.AuthService) {
	t.Helper()
	store := memory.NewStore()
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "seed-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return store, services.NewAuthService(store.Identity, store.Profiles, jwt, zerolog.Nop())
}

func TestCreateDefaultData_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, accounts := newAccounts(t)
	opts := Options{AdminEmail: "Admin@Campus.test", AdminName: "Administrator", AdminPassword: "changeme", SampleCourses: true}

	require.NoError(t, CreateDefaultData(ctx, store, accounts, opts, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, store, accounts, opts, zerolog.Nop()))

	courses, err := store.Courses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, len(sampleCourses))

	count, err := store.Profiles.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateDefaultData_NoAdminConfigured(t *testing.T) {
	ctx := context.Background()
	store, accounts := newAccounts(t)

	require.NoError(t, CreateDefaultData(ctx, store, accounts, Options{}, zerolog.Nop()))

	count, err := store.Profiles.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	courses, err := store.Courses.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestEnsureAdmin_PromotesExistingAccount(t *testing.T) {
	ctx := context.Background()
	store, accounts := newAccounts(t)

	student, err := accounts.CreateAccount(ctx, "ayse@campus.test", "secret123", "Ayse Kaya", models.RoleStudent)
	require.NoError(t, err)

	profile, created, err := EnsureAdmin(ctx, store, accounts, "AYSE@campus.test", "Ignored", "other-pass", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, student.ID, profile.ID)
	assert.Equal(t, models.RoleAdmin, profile.Role)
}

func TestEnsureAdmin_RejectsInvalidInput(t *testing.T) {
	store, accounts := newAccounts(t)

	_, _, err := EnsureAdmin(context.Background(), store, accounts, "not-an-email", "Admin", "secret123", zerolog.Nop())
	require.Error(t, err)
}
