package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
)

type withdrawalRepository struct {
	db *DB
}

func (r *withdrawalRepository) hydrate(w *models.Withdrawal) *models.Withdrawal {
	out := *w
	out.Reason = strPtr(w.Reason)
	out.StudentCourseID = int64Ptr(w.StudentCourseID)
	out.Course = nil
	if c, ok := r.db.courses[w.CourseID]; ok {
		out.Course = copyCourse(c)
	}
	return &out
}

func (r *withdrawalRepository) Create(_ context.Context, withdrawal *models.Withdrawal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[withdrawal.CourseID]; !ok {
		return fmt.Errorf("course %d: %w", withdrawal.CourseID, repositories.ErrNotFound)
	}
	if withdrawal.StudentCourseID != nil {
		if _, ok := r.db.enrollments[*withdrawal.StudentCourseID]; !ok {
			return fmt.Errorf("enrollment %d: %w", *withdrawal.StudentCourseID, repositories.ErrNotFound)
		}
	}
	if withdrawal.Status == models.WithdrawalPending {
		for _, w := range r.db.withdrawals {
			if w.StudentID == withdrawal.StudentID && w.CourseID == withdrawal.CourseID && w.Status == models.WithdrawalPending {
				return fmt.Errorf("pending withdrawal: %w", repositories.ErrDuplicate)
			}
		}
	}

	now := r.db.now()
	withdrawal.ID = r.db.nextID()
	withdrawal.CreatedAt = now
	withdrawal.UpdatedAt = now
	stored := *withdrawal
	stored.Reason = strPtr(withdrawal.Reason)
	stored.StudentCourseID = int64Ptr(withdrawal.StudentCourseID)
	stored.Course = nil
	r.db.withdrawals[stored.ID] = &stored
	return nil
}

func (r *withdrawalRepository) GetByID(_ context.Context, id int64) (*models.Withdrawal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	w, ok := r.db.withdrawals[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.hydrate(w), nil
}

func (r *withdrawalRepository) Transition(_ context.Context, id int64, from, to models.WithdrawalStatus, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	w, ok := r.db.withdrawals[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if w.Status != from {
		return repositories.ErrStaleState
	}
	w.Status = to
	w.UpdatedAt = at
	return nil
}

func (r *withdrawalRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.withdrawals[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.db.withdrawals, id)
	return nil
}

func (r *withdrawalRepository) List(_ context.Context, filter models.WithdrawalFilter) ([]*models.Withdrawal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []*models.Withdrawal{}
	for _, w := range r.db.withdrawals {
		if filter.StudentID != "" && w.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != 0 && w.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		out = append(out, r.hydrate(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
