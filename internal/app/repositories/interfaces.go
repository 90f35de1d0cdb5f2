package repositories

import (
	"context"
	"time"

	"github.com/yigit/campusportal/internal/app/models"
)

// ProfileFilter narrows profile listings
type ProfileFilter struct {
	Query string // case-insensitive match on full name or email
	Role  models.Role
}

// IdentityRepository stores credentials together with their profile
type IdentityRepository interface {
	// CreateAccount inserts the auth user and its profile atomically. ErrDuplicate on a taken email.
	CreateAccount(ctx context.Context, user *models.AuthUser, profile *models.Profile) error
	GetAuthUserByEmail(ctx context.Context, email string) (*models.AuthUser, error)
	TouchSignIn(ctx context.Context, userID string, at time.Time) error
}

// ProfileRepository reads and maintains profiles
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context, filter ProfileFilter, opts models.ListOptions) ([]*models.Profile, int64, error)
	Count(ctx context.Context) (int64, error)
	SetRole(ctx context.Context, id string, role models.Role) error
}

// CourseRepository persists courses
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	// DeleteUnreferenced removes the course unless any enrollment references it (ErrReferenced).
	DeleteUnreferenced(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
}

// EnrollmentRepository persists student_courses rows
type EnrollmentRepository interface {
	// Create inserts an enrollment. ErrDuplicate when the student already holds an active one for the course.
	Create(ctx context.Context, enrollment *models.StudentCourse) error
	// GetByID returns the enrollment with StudentName and Course populated.
	GetByID(ctx context.Context, id int64) (*models.StudentCourse, error)
	FindActive(ctx context.Context, studentID string, courseID int64) (*models.StudentCourse, error)
	SetStatus(ctx context.Context, id int64, status models.EnrollmentStatus, at time.Time) error
	// WithdrawActiveByPair marks every active row of the pair withdrawn and returns how many changed.
	WithdrawActiveByPair(ctx context.Context, studentID string, courseID int64, at time.Time) (int64, error)
	// Delete removes the row and returns it.
	Delete(ctx context.Context, id int64) (*models.StudentCourse, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.StudentCourse, error)
}

// WithdrawalRepository persists withdrawals
type WithdrawalRepository interface {
	// Create inserts a withdrawal. ErrDuplicate when the pair already has a pending one.
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	GetByID(ctx context.Context, id int64) (*models.Withdrawal, error)
	// Transition moves the row from one status to another; ErrStaleState when it is no longer in from.
	Transition(ctx context.Context, id int64, from, to models.WithdrawalStatus, at time.Time) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.WithdrawalFilter) ([]*models.Withdrawal, error)
}

// ScholarshipRepository persists scholarships
type ScholarshipRepository interface {
	Create(ctx context.Context, scholarship *models.Scholarship) error
	Update(ctx context.Context, scholarship *models.Scholarship) error
	// Delete removes the row and returns the owning student id.
	Delete(ctx context.Context, id int64) (string, error)
	GetByID(ctx context.Context, id int64) (*models.Scholarship, error)
	// List returns scholarships newest start date first; empty studentID lists all.
	List(ctx context.Context, studentID string) ([]*models.Scholarship, error)
}

// AllowanceRepository persists allowances
type AllowanceRepository interface {
	Create(ctx context.Context, allowance *models.Allowance) error
	Update(ctx context.Context, allowance *models.Allowance) error
	Delete(ctx context.Context, id int64) (string, error)
	GetByID(ctx context.Context, id int64) (*models.Allowance, error)
	// List returns allowances newest payment date first; empty studentID lists all.
	List(ctx context.Context, studentID string) ([]*models.Allowance, error)
}

// NewsRepository persists news articles
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.News, error)
	List(ctx context.Context, opts models.ListOptions) ([]*models.News, int64, error)
}

// GalleryRepository persists gallery items
type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.GalleryItem, error)
	List(ctx context.Context) ([]*models.GalleryItem, error)
}

// ReportRepository persists accounting reports
type ReportRepository interface {
	Create(ctx context.Context, report *models.AccountingReport) error
	Update(ctx context.Context, report *models.AccountingReport) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.AccountingReport, error)
	List(ctx context.Context) ([]*models.AccountingReport, error)
}

// Store holds all the repository instances of one backend
type Store struct {
	Identity     IdentityRepository
	Profiles     ProfileRepository
	Courses      CourseRepository
	Enrollments  EnrollmentRepository
	Withdrawals  WithdrawalRepository
	Scholarships ScholarshipRepository
	Allowances   AllowanceRepository
	News         NewsRepository
	Gallery      GalleryRepository
	Reports      ReportRepository
}
