package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/app/repositories/memory"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/auth"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = 4
	os.Exit(m.Run())
}

var fixedNow = time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ctx      context.Context
	store    *repositories.Store
	recorder *revalidate.Recorder
	log      zerolog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		ctx:      context.Background(),
		store:    memory.NewStore(),
		recorder: revalidate.NewRecorder(),
		log:      zerolog.Nop(),
	}
}

func (f *fixture) profile(t *testing.T, role models.Role, name string) *models.Profile {
	t.Helper()
	id := uuid.NewString()
	p := &models.Profile{ID: id, Email: id[:8] + "@campus.edu", FullName: name, Role: role, IsActive: true}
	require.NoError(t, f.store.Identity.CreateAccount(f.ctx, &models.AuthUser{ID: id, Email: p.Email, PasswordHash: "x"}, p))
	return p
}

func (f *fixture) course(t *testing.T, code string) *models.Course {
	t.Helper()
	c := &models.Course{CourseCode: code, Title: "Course " + code, Credits: 3}
	require.NoError(t, f.store.Courses.Create(f.ctx, c))
	return c
}

func (f *fixture) enroll(t *testing.T, studentID string, courseID int64) *models.StudentCourse {
	t.Helper()
	e := &models.StudentCourse{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.EnrollmentActive,
	}
	require.NoError(t, f.store.Enrollments.Create(f.ctx, e))
	return e
}

func (f *fixture) enrollmentStatus(t *testing.T, id int64) models.EnrollmentStatus {
	t.Helper()
	e, err := f.store.Enrollments.GetByID(f.ctx, id)
	require.NoError(t, err)
	return e.Status
}

// requireAppError asserts the taxonomy sentinel and the user-facing message
func requireAppError(t *testing.T, err error, sentinel error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, message, apperrors.Message(err, ""))
}

func TestParseHelpers(t *testing.T) {
	id, ok := parseID(dto.FormValue(" 42 "))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "4abc", "1.5"} {
		_, ok := parseID(dto.FormValue(bad))
		assert.False(t, ok, bad)
	}

	n, ok := parseInt(dto.FormValue("4"))
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	_, ok = parseInt(dto.FormValue("four"))
	assert.False(t, ok)

	amount, ok := parseAmount(dto.FormValue("1500.50"))
	assert.True(t, ok)
	assert.InDelta(t, 1500.5, amount, 0.0001)
	for _, bad := range []string{"", "NaN", "Inf", "abc"} {
		_, ok := parseAmount(dto.FormValue(bad))
		assert.False(t, ok, bad)
	}

	_, ok = parseDate(dto.FormValue("2024-02-30"))
	assert.False(t, ok)
	d, ok := parseDate(dto.FormValue("2024-09-01"))
	assert.True(t, ok)
	assert.Equal(t, 2024, d.Year())
}
