package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
)

type scholarshipRepository struct {
	db *DB
}

func (r *scholarshipRepository) hydrate(s *models.Scholarship) *models.Scholarship {
	out := *s
	out.Description = strPtr(s.Description)
	out.StudentName = nil
	if p, ok := r.db.profiles[s.StudentID]; ok {
		name := p.FullName
		out.StudentName = &name
	}
	return &out
}

func (r *scholarshipRepository) Create(_ context.Context, scholarship *models.Scholarship) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.profiles[scholarship.StudentID]; !ok {
		return fmt.Errorf("student %s: %w", scholarship.StudentID, repositories.ErrNotFound)
	}
	now := r.db.now()
	scholarship.ID = r.db.nextID()
	scholarship.CreatedAt = now
	scholarship.UpdatedAt = now
	stored := *scholarship
	stored.Description = strPtr(scholarship.Description)
	stored.StudentName = nil
	r.db.scholarships[stored.ID] = &stored
	return nil
}

func (r *scholarshipRepository) Update(_ context.Context, scholarship *models.Scholarship) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.scholarships[scholarship.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := r.db.profiles[scholarship.StudentID]; !ok {
		return fmt.Errorf("student %s: %w", scholarship.StudentID, repositories.ErrNotFound)
	}
	scholarship.CreatedAt = existing.CreatedAt
	scholarship.UpdatedAt = r.db.now()
	stored := *scholarship
	stored.Description = strPtr(scholarship.Description)
	stored.StudentName = nil
	r.db.scholarships[stored.ID] = &stored
	return nil
}

func (r *scholarshipRepository) Delete(_ context.Context, id int64) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.scholarships[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	delete(r.db.scholarships, id)
	return s.StudentID, nil
}

func (r *scholarshipRepository) GetByID(_ context.Context, id int64) (*models.Scholarship, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.scholarships[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.hydrate(s), nil
}

func (r *scholarshipRepository) List(_ context.Context, studentID string) ([]*models.Scholarship, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []*models.Scholarship{}
	for _, s := range r.db.scholarships {
		if studentID != "" && s.StudentID != studentID {
			continue
		}
		out = append(out, r.hydrate(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type allowanceRepository struct {
	db *DB
}

func (r *allowanceRepository) hydrate(a *models.Allowance) *models.Allowance {
	out := *a
	out.Description = strPtr(a.Description)
	out.StudentName = nil
	if p, ok := r.db.profiles[a.StudentID]; ok {
		name := p.FullName
		out.StudentName = &name
	}
	return &out
}

func (r *allowanceRepository) Create(_ context.Context, allowance *models.Allowance) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.profiles[allowance.StudentID]; !ok {
		return fmt.Errorf("student %s: %w", allowance.StudentID, repositories.ErrNotFound)
	}
	now := r.db.now()
	allowance.ID = r.db.nextID()
	allowance.CreatedAt = now
	allowance.UpdatedAt = now
	stored := *allowance
	stored.Description = strPtr(allowance.Description)
	stored.StudentName = nil
	r.db.allowances[stored.ID] = &stored
	return nil
}

func (r *allowanceRepository) Update(_ context.Context, allowance *models.Allowance) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.allowances[allowance.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := r.db.profiles[allowance.StudentID]; !ok {
		return fmt.Errorf("student %s: %w", allowance.StudentID, repositories.ErrNotFound)
	}
	allowance.CreatedAt = existing.CreatedAt
	allowance.UpdatedAt = r.db.now()
	stored := *allowance
	stored.Description = strPtr(allowance.Description)
	stored.StudentName = nil
	r.db.allowances[stored.ID] = &stored
	return nil
}

func (r *allowanceRepository) Delete(_ context.Context, id int64) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.allowances[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	delete(r.db.allowances, id)
	return a.StudentID, nil
}

func (r *allowanceRepository) GetByID(_ context.Context, id int64) (*models.Allowance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.allowances[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.hydrate(a), nil
}

func (r *allowanceRepository) List(_ context.Context, studentID string) ([]*models.Allowance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []*models.Allowance{}
	for _, a := range r.db.allowances {
		if studentID != "" && a.StudentID != studentID {
			continue
		}
		out = append(out, r.hydrate(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.After(out[j].PaymentDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
