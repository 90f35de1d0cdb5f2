package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
)

type courseRepository struct {
	db *DB
}

func copyCourse(c *models.Course) *models.Course {
	out := *c
	out.Description = strPtr(c.Description)
	return &out
}

func (r *courseRepository) codeTaken(code string, exceptID int64) bool {
	for _, c := range r.db.courses {
		if c.ID != exceptID && strings.EqualFold(c.CourseCode, code) {
			return true
		}
	}
	return false
}

func (r *courseRepository) Create(_ context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.codeTaken(course.CourseCode, 0) {
		return fmt.Errorf("course code %s: %w", course.CourseCode, repositories.ErrDuplicate)
	}
	now := r.db.now()
	course.ID = r.db.nextID()
	course.CreatedAt = now
	course.UpdatedAt = now
	r.db.courses[course.ID] = copyCourse(course)
	return nil
}

func (r *courseRepository) Update(_ context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.courses[course.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.codeTaken(course.CourseCode, course.ID) {
		return fmt.Errorf("course code %s: %w", course.CourseCode, repositories.ErrDuplicate)
	}
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = r.db.now()
	r.db.courses[course.ID] = copyCourse(course)
	return nil
}

func (r *courseRepository) DeleteUnreferenced(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, e := range r.db.enrollments {
		if e.CourseID == id {
			return repositories.ErrReferenced
		}
	}
	delete(r.db.courses, id)
	return nil
}

func (r *courseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyCourse(c), nil
}

func (r *courseRepository) List(_ context.Context) ([]*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*models.Course, 0, len(r.db.courses))
	for _, c := range r.db.courses {
		out = append(out, copyCourse(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseCode < out[j].CourseCode })
	return out, nil
}

type enrollmentRepository struct {
	db *DB
}

// hydrate copies e and attaches its course and student name; callers hold a lock
func (r *enrollmentRepository) hydrate(e *models.StudentCourse) *models.StudentCourse {
	out := *e
	out.Grade = strPtr(e.Grade)
	out.Course = nil
	out.StudentName = nil
	if c, ok := r.db.courses[e.CourseID]; ok {
		out.Course = copyCourse(c)
	}
	if p, ok := r.db.profiles[e.StudentID]; ok {
		name := p.FullName
		out.StudentName = &name
	}
	return &out
}

func (r *enrollmentRepository) Create(_ context.Context, enrollment *models.StudentCourse) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[enrollment.CourseID]; !ok {
		return fmt.Errorf("course %d: %w", enrollment.CourseID, repositories.ErrNotFound)
	}
	if _, ok := r.db.profiles[enrollment.StudentID]; !ok {
		return fmt.Errorf("student %s: %w", enrollment.StudentID, repositories.ErrNotFound)
	}
	if enrollment.Status == models.EnrollmentActive {
		for _, e := range r.db.enrollments {
			if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID && e.Status == models.EnrollmentActive {
				return fmt.Errorf("active enrollment: %w", repositories.ErrDuplicate)
			}
		}
	}

	now := r.db.now()
	enrollment.ID = r.db.nextID()
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now
	stored := *enrollment
	stored.Grade = strPtr(enrollment.Grade)
	stored.Course = nil
	stored.StudentName = nil
	r.db.enrollments[stored.ID] = &stored
	return nil
}

func (r *enrollmentRepository) GetByID(_ context.Context, id int64) (*models.StudentCourse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	e, ok := r.db.enrollments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.hydrate(e), nil
}

func (r *enrollmentRepository) FindActive(_ context.Context, studentID string, courseID int64) (*models.StudentCourse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, e := range r.db.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID && e.Status == models.EnrollmentActive {
			return r.hydrate(e), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *enrollmentRepository) SetStatus(_ context.Context, id int64, status models.EnrollmentStatus, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.enrollments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if status == models.EnrollmentActive && e.Status != models.EnrollmentActive {
		for _, other := range r.db.enrollments {
			if other.ID != id && other.StudentID == e.StudentID && other.CourseID == e.CourseID && other.Status == models.EnrollmentActive {
				return fmt.Errorf("active enrollment: %w", repositories.ErrDuplicate)
			}
		}
	}
	e.Status = status
	e.UpdatedAt = at
	return nil
}

func (r *enrollmentRepository) WithdrawActiveByPair(_ context.Context, studentID string, courseID int64, at time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for _, e := range r.db.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID && e.Status == models.EnrollmentActive {
			e.Status = models.EnrollmentWithdrawn
			e.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (r *enrollmentRepository) Delete(_ context.Context, id int64) (*models.StudentCourse, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.enrollments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := r.hydrate(e)
	delete(r.db.enrollments, id)

	// ON DELETE SET NULL
	for _, w := range r.db.withdrawals {
		if w.StudentCourseID != nil && *w.StudentCourseID == id {
			w.StudentCourseID = nil
		}
	}
	return out, nil
}

func (r *enrollmentRepository) List(_ context.Context, filter models.EnrollmentFilter) ([]*models.StudentCourse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []*models.StudentCourse{}
	for _, e := range r.db.enrollments {
		if filter.StudentID != "" && e.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != 0 && e.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, r.hydrate(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EnrollmentDate.Equal(out[j].EnrollmentDate) {
			return out[i].EnrollmentDate.After(out[j].EnrollmentDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
