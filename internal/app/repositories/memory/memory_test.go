package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

func seedStudent(t *testing.T, store *repositories.Store, name string) *models.Profile {
	t.Helper()
	id := uuid.NewString()
	profile := &models.Profile{ID: id, Email: name + "@campus.edu", FullName: name, Role: models.RoleStudent, IsActive: true}
	require.NoError(t, store.Identity.CreateAccount(context.Background(), &models.AuthUser{ID: id, Email: profile.Email, PasswordHash: "x"}, profile))
	return profile
}

func seedCourse(t *testing.T, store *repositories.Store, code string) *models.Course {
	t.Helper()
	course := &models.Course{CourseCode: code, Title: code, Credits: 3}
	require.NoError(t, store.Courses.Create(context.Background(), course))
	return course
}

func TestCourses_UniqueCode(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedCourse(t, store, "CS101")

	err := store.Courses.Create(ctx, &models.Course{CourseCode: "cs101", Title: "dup", Credits: 1})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCourses_DeleteGuard(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	student := seedStudent(t, store, "ana")
	used := seedCourse(t, store, "CS101")
	free := seedCourse(t, store, "CS102")

	require.NoError(t, store.Enrollments.Create(ctx, &models.StudentCourse{
		StudentID: student.ID, CourseID: used.ID, Status: models.EnrollmentWithdrawn, EnrollmentDate: time.Now(),
	}))

	err := store.Courses.DeleteUnreferenced(ctx, used.ID)
	assert.ErrorIs(t, err, apperrors.ErrDependentRecordsExist)

	require.NoError(t, store.Courses.DeleteUnreferenced(ctx, free.ID))
	assert.ErrorIs(t, store.Courses.DeleteUnreferenced(ctx, free.ID), repositories.ErrNotFound)
}

func TestEnrollments_OneActivePerPair(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	student := seedStudent(t, store, "ben")
	course := seedCourse(t, store, "MA201")

	first := &models.StudentCourse{StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentActive}
	require.NoError(t, store.Enrollments.Create(ctx, first))

	err := store.Enrollments.Create(ctx, &models.StudentCourse{StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentActive})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// re-enrolling after a withdrawal is allowed
	require.NoError(t, store.Enrollments.SetStatus(ctx, first.ID, models.EnrollmentWithdrawn, time.Now()))
	require.NoError(t, store.Enrollments.Create(ctx, &models.StudentCourse{StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentActive}))

	got, err := store.Enrollments.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StudentName)
	assert.Equal(t, "ben", *got.StudentName)
	assert.Equal(t, "MA201", got.Course.CourseCode)
}

func TestWithdrawals_ConcurrentPendingCreate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	student := seedStudent(t, store, "cem")
	course := seedCourse(t, store, "PH110")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Withdrawals.Create(ctx, &models.Withdrawal{
				StudentID: student.ID, CourseID: course.ID, Status: models.WithdrawalPending, WithdrawalDate: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repositories.ErrDuplicate):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)

	pending, err := store.Withdrawals.List(ctx, models.WithdrawalFilter{StudentID: student.ID, Status: models.WithdrawalPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestWithdrawals_Transition(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	student := seedStudent(t, store, "dia")
	course := seedCourse(t, store, "CH100")

	w := &models.Withdrawal{StudentID: student.ID, CourseID: course.ID, Status: models.WithdrawalPending}
	require.NoError(t, store.Withdrawals.Create(ctx, w))

	require.NoError(t, store.Withdrawals.Transition(ctx, w.ID, models.WithdrawalPending, models.WithdrawalRejected, time.Now()))
	err := store.Withdrawals.Transition(ctx, w.ID, models.WithdrawalPending, models.WithdrawalApproved, time.Now())
	assert.ErrorIs(t, err, repositories.ErrStaleState)
	assert.ErrorIs(t, store.Withdrawals.Transition(ctx, 999, models.WithdrawalPending, models.WithdrawalApproved, time.Now()), repositories.ErrNotFound)
}

func TestEnrollmentDelete_UnlinksWithdrawals(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	student := seedStudent(t, store, "eda")
	course := seedCourse(t, store, "BI101")

	e := &models.StudentCourse{StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentActive}
	require.NoError(t, store.Enrollments.Create(ctx, e))
	w := &models.Withdrawal{StudentID: student.ID, CourseID: course.ID, StudentCourseID: &e.ID, Status: models.WithdrawalPending}
	require.NoError(t, store.Withdrawals.Create(ctx, w))

	removed, err := store.Enrollments.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, removed.StudentID)

	got, err := store.Withdrawals.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StudentCourseID)
}

func TestProfiles_ListFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedStudent(t, store, "fatma")
	seedStudent(t, store, "gul")

	list, total, err := store.Profiles.List(ctx, repositories.ProfileFilter{Query: "FAT"}, models.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "fatma", list[0].FullName)

	list, total, err = store.Profiles.List(ctx, repositories.ProfileFilter{Role: models.RoleAdmin}, models.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestNews_Paging(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, store.News.Create(ctx, &models.News{Title: title, Content: title}))
	}

	list, total, err := store.News.List(ctx, models.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Title)

	list, _, err = store.News.List(ctx, models.ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Title)
}
