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

func TestEnrollmentService_Assign(t *testing.T) {
	f := newFixture(t)
	svc := NewEnrollmentService(f.store.Enrollments, f.recorder, f.log)
	student := f.profile(t, models.RoleStudent, "Ada")
	c := f.course(t, "CS101")

	form := &dto.EnrollmentForm{
		StudentID:      dto.FormValue(student.ID),
		CourseID:       dto.FormValue(idString(c.ID)),
		EnrollmentDate: "2024-09-01",
	}
	enrollment, err := svc.AssignCourse(f.ctx, form)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, []string{revalidate.UserPath(student.ID)}, f.recorder.Paths())

	_, err = svc.AssignCourse(f.ctx, form)
	requireAppError(t, err, apperrors.ErrConflict, MsgAlreadyEnrolled)

	// a withdrawn enrollment no longer blocks a new one
	require.NoError(t, f.store.Enrollments.SetStatus(f.ctx, enrollment.ID, models.EnrollmentWithdrawn, fixedNow))
	again, err := svc.AssignCourse(f.ctx, form)
	require.NoError(t, err)
	assert.NotEqual(t, enrollment.ID, again.ID)
}

func TestEnrollmentService_AssignValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewEnrollmentService(f.store.Enrollments, f.recorder, f.log)
	student := f.profile(t, models.RoleStudent, "Ada")
	c := f.course(t, "CS101")

	forms := []*dto.EnrollmentForm{
		{CourseID: dto.FormValue(idString(c.ID)), EnrollmentDate: "2024-09-01"},
		{StudentID: dto.FormValue(student.ID), EnrollmentDate: "2024-09-01"},
		{StudentID: dto.FormValue(student.ID), CourseID: dto.FormValue(idString(c.ID))},
		{StudentID: dto.FormValue(student.ID), CourseID: "abc", EnrollmentDate: "2024-09-01"},
		{StudentID: dto.FormValue(student.ID), CourseID: dto.FormValue(idString(c.ID)), EnrollmentDate: "first of september"},
	}
	for _, form := range forms {
		_, err := svc.AssignCourse(f.ctx, form)
		requireAppError(t, err, apperrors.ErrValidationFailed, MsgEnrollmentRequired)
	}

	rows, err := f.store.Enrollments.List(f.ctx, models.EnrollmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.AssignCourse(f.ctx, &dto.EnrollmentForm{StudentID: dto.FormValue(student.ID), CourseID: "9999", EnrollmentDate: "2024-09-01"})
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgStudentOrCourseMissing)
}

func TestEnrollmentService_Remove(t *testing.T) {
	f := newFixture(t)
	svc := NewEnrollmentService(f.store.Enrollments, f.recorder, f.log)
	student := f.profile(t, models.RoleStudent, "Ada")
	c := f.course(t, "CS101")
	e := f.enroll(t, student.ID, c.ID)

	require.NoError(t, svc.RemoveCourse(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(e.ID))}))
	assert.Equal(t, []string{revalidate.PathDashboardUsers, revalidate.UserPath(student.ID)}, f.recorder.Paths())

	err := svc.RemoveCourse(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(e.ID))})
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgEnrollmentNotFound)
}

func TestEnrollmentService_RemoveStudent(t *testing.T) {
	f := newFixture(t)
	svc := NewEnrollmentService(f.store.Enrollments, f.recorder, f.log)
	student := f.profile(t, models.RoleStudent, "Ada")
	c := f.course(t, "CS101")
	first := f.enroll(t, student.ID, c.ID)
	require.NoError(t, f.store.Enrollments.SetStatus(f.ctx, first.ID, models.EnrollmentCompleted, fixedNow))
	second := f.enroll(t, student.ID, c.ID)

	require.NoError(t, svc.RemoveStudent(f.ctx, &dto.RemoveStudentRequest{EnrollmentID: dto.FormValue(idString(first.ID))}))
	require.NoError(t, svc.RemoveStudent(f.ctx, &dto.RemoveStudentRequest{StudentCourseID: dto.FormValue(idString(second.ID))}))

	err := svc.RemoveStudent(f.ctx, &dto.RemoveStudentRequest{StudentID: dto.FormValue(student.ID)})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgStudentCourseIDMissing)

	rows, err := f.store.Enrollments.List(f.ctx, models.EnrollmentFilter{StudentID: student.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
