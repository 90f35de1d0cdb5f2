package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

// flakyBulkStore fails chosen operations for chosen enrollment ids
type flakyBulkStore struct {
	BulkWithdrawalStore
	failCreate map[int64]bool
	failStatus map[int64]bool
	onFetch    func(id int64)
}

func (s *flakyBulkStore) GetEnrollment(ctx context.Context, id int64) (*models.StudentCourse, error) {
	if s.onFetch != nil {
		s.onFetch(id)
	}
	return s.BulkWithdrawalStore.GetEnrollment(ctx, id)
}

func (s *flakyBulkStore) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	if w.StudentCourseID != nil && s.failCreate[*w.StudentCourseID] {
		return errors.New("insert failed")
	}
	return s.BulkWithdrawalStore.CreateWithdrawal(ctx, w)
}

func (s *flakyBulkStore) SetEnrollmentStatus(ctx context.Context, id int64, status models.EnrollmentStatus, at time.Time) error {
	if s.failStatus[id] {
		return errors.New("update failed")
	}
	return s.BulkWithdrawalStore.SetEnrollmentStatus(ctx, id, status, at)
}

func TestProcessBulkWithdrawal_MixedOutcomes(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "CS101")
	names := []string{"Ada", "Brian", "Chen", "Dana", "Eve"}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		ids = append(ids, f.enroll(t, f.profile(t, models.RoleStudent, name).ID, c.ID).ID)
	}
	// Brian is no longer active
	require.NoError(t, f.store.Enrollments.SetStatus(f.ctx, ids[1], models.EnrollmentCompleted, fixedNow))

	store := &flakyBulkStore{
		BulkWithdrawalStore: storeBulkAdapter{store: f.store},
		failCreate:          map[int64]bool{ids[2]: true},
		failStatus:          map[int64]bool{ids[3]: true},
	}
	const missing = int64(9999)
	req := BulkWithdrawalRequest{
		CourseID:       c.ID,
		EnrollmentIDs:  append(append([]int64{}, ids...), missing),
		WithdrawalDate: fixedNow,
	}

	result := ProcessBulkWithdrawal(f.ctx, store, req, func() time.Time { return fixedNow }, zerolog.Nop())

	assert.Equal(t, []int64{ids[0], ids[4]}, result.Succeeded)
	assert.Equal(t, []models.BulkWithdrawalFailure{
		{ID: ids[1], Name: "Brian", Error: MsgBulkNotActive},
		{ID: ids[2], Name: "Chen", Error: MsgBulkCreateFailed},
		{ID: ids[3], Name: "Dana", Error: MsgBulkStatusFailed},
		{ID: missing, Name: "Unknown", Error: MsgBulkFetchFailed},
	}, result.Failed)
	assert.Equal(t, len(req.EnrollmentIDs), result.Total())

	assert.Equal(t, models.EnrollmentWithdrawn, f.enrollmentStatus(t, ids[0]))
	assert.Equal(t, models.EnrollmentCompleted, f.enrollmentStatus(t, ids[1]))
	assert.Equal(t, models.EnrollmentActive, f.enrollmentStatus(t, ids[2]))
	// the approved row stays when the status update fails
	assert.Equal(t, models.EnrollmentActive, f.enrollmentStatus(t, ids[3]))

	approved, err := f.store.Withdrawals.List(f.ctx, models.WithdrawalFilter{CourseID: c.ID, Status: models.WithdrawalApproved})
	require.NoError(t, err)
	assert.Len(t, approved, 3)
	for _, w := range approved {
		require.NotNil(t, w.Reason)
		assert.Equal(t, "Bulk withdrawal: No reason provided", *w.Reason)
	}
}

func TestProcessBulkWithdrawal_Cancelled(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "CS101")
	var ids []int64
	for _, name := range []string{"Ada", "Brian", "Chen"} {
		ids = append(ids, f.enroll(t, f.profile(t, models.RoleStudent, name).ID, c.ID).ID)
	}

	ctx, cancel := context.WithCancel(f.ctx)
	defer cancel()
	store := &flakyBulkStore{
		BulkWithdrawalStore: storeBulkAdapter{store: f.store},
		onFetch: func(id int64) {
			if id == ids[0] {
				cancel()
			}
		},
	}

	result := ProcessBulkWithdrawal(ctx, store, BulkWithdrawalRequest{
		CourseID:       c.ID,
		EnrollmentIDs:  ids,
		WithdrawalDate: fixedNow,
		Reason:         "Course closed",
	}, nil, zerolog.Nop())

	assert.Equal(t, []int64{ids[0]}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	for i, failure := range result.Failed {
		assert.Equal(t, ids[i+1], failure.ID)
		assert.Equal(t, context.Canceled.Error(), failure.Error)
	}
	assert.Equal(t, models.EnrollmentActive, f.enrollmentStatus(t, ids[2]))
}

func TestProcessBulkWithdrawal_UnusableIDs(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "CS101")
	e := f.enroll(t, f.profile(t, models.RoleStudent, "Ada").ID, c.ID)

	ids, err := ParseEnrollmentIDs(dto.FormValue(`[` + idString(e.ID) + `, "abc"]`))
	require.NoError(t, err)

	result := ProcessBulkWithdrawal(f.ctx, storeBulkAdapter{store: f.store}, BulkWithdrawalRequest{
		CourseID:       c.ID,
		EnrollmentIDs:  ids,
		WithdrawalDate: fixedNow,
	}, nil, zerolog.Nop())

	assert.Equal(t, []int64{e.ID}, result.Succeeded)
	assert.Equal(t, []models.BulkWithdrawalFailure{{ID: 0, Name: "Unknown", Error: MsgBulkFetchFailed}}, result.Failed)
	assert.Equal(t, models.EnrollmentWithdrawn, f.enrollmentStatus(t, e.ID))
}

func TestProcessBulkWithdrawal_OtherCourseEnrollment(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "CS101")
	other := f.course(t, "MATH201")
	e := f.enroll(t, f.profile(t, models.RoleStudent, "Ada").ID, other.ID)

	result := ProcessBulkWithdrawal(f.ctx, storeBulkAdapter{store: f.store}, BulkWithdrawalRequest{
		CourseID:       c.ID,
		EnrollmentIDs:  []int64{e.ID},
		WithdrawalDate: fixedNow,
	}, nil, zerolog.Nop())

	assert.Empty(t, result.Succeeded)
	assert.Equal(t, []models.BulkWithdrawalFailure{{ID: e.ID, Name: "Ada", Error: MsgBulkNotActive}}, result.Failed)
	assert.Equal(t, models.EnrollmentActive, f.enrollmentStatus(t, e.ID))

	rows, err := f.store.Withdrawals.List(f.ctx, models.WithdrawalFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseEnrollmentIDs(t *testing.T) {
	tests := []struct {
		raw     string
		want    []int64
		wantMsg string
	}{
		{raw: "[12,15,19]", want: []int64{12, 15, 19}},
		{raw: `["4", 5]`, want: []int64{4, 5}},
		{raw: "[]", wantMsg: MsgBulkNoneSelected},
		{raw: `{"id": 4}`, wantMsg: MsgBulkNoneSelected},
		{raw: "12", wantMsg: MsgBulkNoneSelected},
		{raw: "[12,", wantMsg: MsgBulkInvalidIDs},
		{raw: "not json", wantMsg: MsgBulkInvalidIDs},
		{raw: "[5] trailing", wantMsg: MsgBulkInvalidIDs},
		{raw: "[5]]", wantMsg: MsgBulkInvalidIDs},
		{raw: "[5] [6]", wantMsg: MsgBulkInvalidIDs},
		{raw: " [5]\n", want: []int64{5}},
		{raw: `[7, "abc", 1.5, true, null]`, want: []int64{7, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ids, err := ParseEnrollmentIDs(dto.FormValue(tt.raw))
			if tt.wantMsg != "" {
				requireAppError(t, err, apperrors.ErrValidationFailed, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBulkWithdrawalService_Process(t *testing.T) {
	f := newFixture(t)
	svc := NewBulkWithdrawalService(f.store, f.recorder, f.log)
	c := f.course(t, "CS101")
	e := f.enroll(t, f.profile(t, models.RoleStudent, "Ada").ID, c.ID)

	_, err := svc.Process(f.ctx, "", &dto.BulkWithdrawalForm{StudentIDs: "[1]", WithdrawalDate: "2024-11-15"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgBulkRequired)
	_, err = svc.Process(f.ctx, idString(c.ID), &dto.BulkWithdrawalForm{StudentIDs: "[1]"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgBulkRequired)
	_, err = svc.Process(f.ctx, idString(c.ID), &dto.BulkWithdrawalForm{StudentIDs: "[]", WithdrawalDate: "2024-11-15"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgBulkNoneSelected)
	assert.Zero(t, f.recorder.Calls())

	// course id from the path when the form omits it
	result, err := svc.Process(f.ctx, idString(c.ID), &dto.BulkWithdrawalForm{
		StudentIDs:     dto.FormValue("[" + idString(e.ID) + "]"),
		WithdrawalDate: "2024-11-15",
		Reason:         "Course closed",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{e.ID}, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []string{revalidate.PathDashboardCourses, revalidate.PathDashboardUsers}, f.recorder.Paths())

	withdrawals, err := f.store.Withdrawals.List(f.ctx, models.WithdrawalFilter{CourseID: c.ID})
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, "Bulk withdrawal: Course closed", *withdrawals[0].Reason)
}

func TestBulkWithdrawalService_RouteCourseWins(t *testing.T) {
	f := newFixture(t)
	svc := NewBulkWithdrawalService(f.store, f.recorder, f.log)
	c := f.course(t, "CS101")
	other := f.course(t, "MATH201")
	e := f.enroll(t, f.profile(t, models.RoleStudent, "Ada").ID, c.ID)

	result, err := svc.Process(f.ctx, idString(c.ID), &dto.BulkWithdrawalForm{
		CourseID:       dto.FormValue(idString(other.ID)),
		StudentIDs:     dto.FormValue("[" + idString(e.ID) + "]"),
		WithdrawalDate: "2024-11-15",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{e.ID}, result.Succeeded)

	withdrawals, err := f.store.Withdrawals.List(f.ctx, models.WithdrawalFilter{})
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, c.ID, withdrawals[0].CourseID)

	// without a route id the form's course is used
	e2 := f.enroll(t, f.profile(t, models.RoleStudent, "Brian").ID, other.ID)
	result, err = svc.Process(f.ctx, "", &dto.BulkWithdrawalForm{
		CourseID:       dto.FormValue(idString(other.ID)),
		StudentIDs:     dto.FormValue("[" + idString(e2.ID) + "]"),
		WithdrawalDate: "2024-11-15",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{e2.ID}, result.Succeeded)
}

var _ BulkWithdrawalStore = storeBulkAdapter{store: &repositories.Store{}}
