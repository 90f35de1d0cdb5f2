// Package memory is an in-process implementation of every repository. It
// enforces the same uniqueness and reference rules as the Postgres schema and
// backs the test-suite and the "memory" database driver.
package memory

import (
	"sync"
	"time"

	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
)

// DB holds all tables behind one lock
type DB struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	authUsers    map[string]*models.AuthUser
	profiles     map[string]*models.Profile
	courses      map[int64]*models.Course
	enrollments  map[int64]*models.StudentCourse
	withdrawals  map[int64]*models.Withdrawal
	scholarships map[int64]*models.Scholarship
	allowances   map[int64]*models.Allowance
	news         map[int64]*models.News
	gallery      map[int64]*models.GalleryItem
	reports      map[int64]*models.AccountingReport
}

// New creates an empty database
func New() *DB {
	return &DB{
		now:          func() time.Time { return time.Now().UTC() },
		authUsers:    map[string]*models.AuthUser{},
		profiles:     map[string]*models.Profile{},
		courses:      map[int64]*models.Course{},
		enrollments:  map[int64]*models.StudentCourse{},
		withdrawals:  map[int64]*models.Withdrawal{},
		scholarships: map[int64]*models.Scholarship{},
		allowances:   map[int64]*models.Allowance{},
		news:         map[int64]*models.News{},
		gallery:      map[int64]*models.GalleryItem{},
		reports:      map[int64]*models.AccountingReport{},
	}
}

// NewStore creates an empty database and returns its repositories
func NewStore() *repositories.Store {
	return New().Store()
}

// Store returns repositories backed by db
func (db *DB) Store() *repositories.Store {
	return &repositories.Store{
		Identity:     &identityRepository{db: db},
		Profiles:     &profileRepository{db: db},
		Courses:      &courseRepository{db: db},
		Enrollments:  &enrollmentRepository{db: db},
		Withdrawals:  &withdrawalRepository{db: db},
		Scholarships: &scholarshipRepository{db: db},
		Allowances:   &allowanceRepository{db: db},
		News:         &newsRepository{db: db},
		Gallery:      &galleryRepository{db: db},
		Reports:      &reportRepository{db: db},
	}
}

// nextID hands out ids shared across tables; callers hold the write lock
func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

func strPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func int64Ptr(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
