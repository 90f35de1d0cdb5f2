package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

func TestCourseService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.store.Courses, f.store.Enrollments, f.recorder, f.log)

	tests := []struct {
		name string
		form dto.CourseForm
	}{
		{name: "missing title", form: dto.CourseForm{CourseCode: "CS101", Credits: "3"}},
		{name: "missing code", form: dto.CourseForm{Title: "Intro", Credits: "3"}},
		{name: "missing credits", form: dto.CourseForm{Title: "Intro", CourseCode: "CS101"}},
		{name: "credits with suffix", form: dto.CourseForm{Title: "Intro", CourseCode: "CS101", Credits: "4abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(f.ctx, &tt.form)
			requireAppError(t, err, apperrors.ErrValidationFailed, MsgCourseCreateRequired)
		})
	}

	courses, err := f.store.Courses.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.Zero(t, f.recorder.Calls())
}

func TestCourseService_CreateAndDuplicateCode(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.store.Courses, f.store.Enrollments, f.recorder, f.log)

	course, err := svc.CreateCourse(f.ctx, &dto.CourseForm{Title: "Linear Algebra", CourseCode: "MATH201", Credits: "4"})
	require.NoError(t, err)
	assert.Equal(t, 4, course.Credits)
	assert.Nil(t, course.Description)
	assert.Equal(t, []string{revalidate.PathDashboardCourses}, f.recorder.Paths())

	_, err = svc.CreateCourse(f.ctx, &dto.CourseForm{Title: "Other", CourseCode: "MATH201", Credits: "2"})
	requireAppError(t, err, apperrors.ErrConflict, MsgCourseCodeTaken)
}

func TestCourseService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.store.Courses, f.store.Enrollments, f.recorder, f.log)
	c := f.course(t, "CS101")

	updated, err := svc.UpdateCourse(f.ctx, &dto.CourseForm{
		ID: dto.FormValue(idString(c.ID)), Title: "Programming I", CourseCode: "CS101", Credits: "5", Description: "Basics",
	})
	require.NoError(t, err)
	assert.Equal(t, "Programming I", updated.Title)

	stored, err := f.store.Courses.GetByID(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Credits)
	require.NotNil(t, stored.Description)
	assert.Equal(t, "Basics", *stored.Description)

	_, err = svc.UpdateCourse(f.ctx, &dto.CourseForm{ID: "9999", Title: "X", CourseCode: "X1", Credits: "1"})
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgCourseNotFound)

	_, err = svc.UpdateCourse(f.ctx, &dto.CourseForm{Title: "X", CourseCode: "X1", Credits: "1"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgCourseUpdateRequired)
}

func TestCourseService_DeleteGuard(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.store.Courses, f.store.Enrollments, f.recorder, f.log)
	student := f.profile(t, models.RoleStudent, "Ada")
	used := f.course(t, "CS101")
	free := f.course(t, "CS102")
	e := f.enroll(t, student.ID, used.ID)
	require.NoError(t, f.store.Enrollments.SetStatus(f.ctx, e.ID, models.EnrollmentWithdrawn, fixedNow))

	// any enrollment, withdrawn included, blocks the delete
	err := svc.DeleteCourse(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(used.ID))})
	requireAppError(t, err, apperrors.ErrDependentRecordsExist, MsgCourseInUse)
	_, err = f.store.Courses.GetByID(f.ctx, used.ID)
	assert.NoError(t, err)
	assert.Zero(t, f.recorder.Calls())

	require.NoError(t, svc.DeleteCourse(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(free.ID))}))
	assert.Equal(t, []string{revalidate.PathDashboardCourses}, f.recorder.Paths())

	err = svc.DeleteCourse(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(free.ID))})
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgCourseNotFound)

	err = svc.DeleteCourse(f.ctx, &dto.IDForm{})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgIDRequired)
}

func TestCourseService_ListEnrollments(t *testing.T) {
	f := newFixture(t)
	svc := NewCourseService(f.store.Courses, f.store.Enrollments, f.recorder, f.log)
	c := f.course(t, "CS101")
	a := f.profile(t, models.RoleStudent, "Ada")
	b := f.profile(t, models.RoleStudent, "Brian")
	active := f.enroll(t, a.ID, c.ID)
	gone := f.enroll(t, b.ID, c.ID)
	require.NoError(t, f.store.Enrollments.SetStatus(f.ctx, gone.ID, models.EnrollmentWithdrawn, fixedNow))

	all, err := svc.ListEnrollments(f.ctx, c.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyActive, err := svc.ListEnrollments(f.ctx, c.ID, "active")
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)

	_, err = svc.ListEnrollments(f.ctx, c.ID, "dropped")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.ListEnrollments(f.ctx, 9999, "")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
