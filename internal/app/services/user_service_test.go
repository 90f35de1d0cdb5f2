package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

func TestUserService_ListUsers(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store, f.log)
	f.profile(t, models.RoleAdmin, "Grace Hopper")
	f.profile(t, models.RoleStudent, "Ada Lovelace")
	f.profile(t, models.RoleStudent, "Alan Turing")

	all, err := svc.ListUsers(f.ctx, dto.UserFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all.Users, 3)
	assert.Equal(t, int64(3), all.Pagination.TotalItems)

	students, err := svc.ListUsers(f.ctx, dto.UserFilter{Role: "student"}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, students.Users, 2)

	search, err := svc.ListUsers(f.ctx, dto.UserFilter{Query: "lovelace"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, search.Users, 1)
	assert.Equal(t, "Ada Lovelace", search.Users[0].FullName)

	_, err = svc.ListUsers(f.ctx, dto.UserFilter{Role: "janitor"}, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUserService_Detail(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store, f.log)
	student := f.profile(t, models.RoleStudent, "Ada Lovelace")
	c := f.course(t, "CS101")
	f.enroll(t, student.ID, c.ID)
	require.NoError(t, f.store.Scholarships.Create(f.ctx, &models.Scholarship{
		StudentID: student.ID, Name: "Merit", Amount: 100, Status: "active",
		StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, f.store.Allowances.Create(f.ctx, &models.Allowance{
		StudentID: student.ID, Type: "housing", Amount: 50, Status: "paid", PaymentDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
	}))

	detail, err := svc.GetUserDetail(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, detail.Profile.ID)
	require.Len(t, detail.Enrollments, 1)
	require.NotNil(t, detail.Enrollments[0].Course)
	assert.Equal(t, "CS101", detail.Enrollments[0].Course.CourseCode)
	assert.Empty(t, detail.Withdrawals)
	assert.Len(t, detail.Scholarships, 1)
	assert.Len(t, detail.Allowances, 1)

	_, err = svc.GetUserDetail(f.ctx, "1c3a9c4e-0000-4000-8000-000000000000")
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgUserNotFound)
}

func TestUserService_CabinetIsScoped(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store, f.log)
	ada := f.profile(t, models.RoleStudent, "Ada")
	brian := f.profile(t, models.RoleStudent, "Brian")
	c := f.course(t, "CS101")
	f.enroll(t, ada.ID, c.ID)
	f.enroll(t, brian.ID, c.ID)

	courses, err := svc.MyCourses(f.ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, ada.ID, courses[0].StudentID)

	scholarships, err := svc.MyScholarships(f.ctx, brian.ID)
	require.NoError(t, err)
	assert.Empty(t, scholarships)
}
