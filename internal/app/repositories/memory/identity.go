package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/helpers"
)

type identityRepository struct {
	db *DB
}

func (r *identityRepository) CreateAccount(_ context.Context, user *models.AuthUser, profile *models.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.authUsers {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, repositories.ErrDuplicate)
		}
	}
	if _, ok := r.db.authUsers[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, repositories.ErrDuplicate)
	}

	now := r.db.now()
	user.CreatedAt = now
	profile.CreatedAt = now

	u := *user
	p := *profile
	r.db.authUsers[u.ID] = &u
	r.db.profiles[p.ID] = &p
	return nil
}

func (r *identityRepository) GetAuthUserByEmail(_ context.Context, email string) (*models.AuthUser, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.authUsers {
		if strings.EqualFold(u.Email, email) {
			c := *u
			if u.LastSignInAt != nil {
				t := *u.LastSignInAt
				c.LastSignInAt = &t
			}
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *identityRepository) TouchSignIn(_ context.Context, userID string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.authUsers[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.LastSignInAt = &at
	return nil
}

type profileRepository struct {
	db *DB
}

func (r *profileRepository) GetByID(_ context.Context, id string) (*models.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *profileRepository) List(_ context.Context, filter repositories.ProfileFilter, opts models.ListOptions) ([]*models.Profile, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := []*models.Profile{}
	for _, p := range r.db.profiles {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.FullName), q) && !strings.Contains(strings.ToLower(p.Email), q) {
			continue
		}
		c := *p
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Email < matched[j].Email
	})

	total := int64(len(matched))
	return page(matched, opts), total, nil
}

func (r *profileRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.profiles)), nil
}

func (r *profileRepository) SetRole(_ context.Context, id string, role models.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Role = role
	return nil
}

// page applies a limit/offset window; a zero limit returns everything from offset
func page[T any](items []T, opts models.ListOptions) []T {
	if opts.Limit <= 0 {
		start, _ := helpers.CalculateSliceIndices(opts.Offset, len(items)+1, len(items))
		return items[start:]
	}
	start, end := helpers.CalculateSliceIndices(opts.Offset, opts.Limit, len(items))
	return items[start:end]
}
