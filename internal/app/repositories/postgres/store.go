// Package postgres implements the repositories on PostgreSQL with pgx and
// squirrel.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/db"
	"github.com/yigit/campusportal/internal/pkg/dberrors"
)

// NewStore returns all repositories backed by database
func NewStore(database *db.PostgresDB) *repositories.Store {
	pool := database.Pool
	return &repositories.Store{
		Identity:     NewIdentityRepository(database),
		Profiles:     NewProfileRepository(pool),
		Courses:      NewCourseRepository(pool),
		Enrollments:  NewEnrollmentRepository(pool),
		Withdrawals:  NewWithdrawalRepository(pool),
		Scholarships: NewScholarshipRepository(pool),
		Allowances:   NewAllowanceRepository(pool),
		News:         NewNewsRepository(pool),
		Gallery:      NewGalleryRepository(pool),
		Reports:      NewReportRepository(pool),
	}
}

// uniqueIndexes names the unique indexes of the schema for log output
var uniqueIndexes = []struct {
	name  string
	label string
}{
	{"idx_auth_users_email", "email already registered"},
	{"idx_courses_code", "course code already taken"},
	{"idx_student_courses_active", "active enrollment already exists"},
	{"idx_withdrawals_pending", "pending withdrawal already exists"},
}

// insertError maps write failures of INSERT/UPDATE statements
func insertError(err error, what string) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		for _, idx := range uniqueIndexes {
			if dberrors.IsDuplicateConstraintError(err, idx.name) {
				return fmt.Errorf("%s: %s: %w", what, idx.label, repositories.ErrDuplicate)
			}
		}
		return fmt.Errorf("%s: %w", what, repositories.ErrDuplicate)
	case dberrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%s references a missing row: %w", what, repositories.ErrNotFound)
	case dberrors.IsInvalidTextRepresentation(err):
		// malformed uuid literal: no such row can exist
		return fmt.Errorf("%s references a missing row: %w", what, repositories.ErrNotFound)
	case dberrors.IsCheckViolation(err):
		return fmt.Errorf("%s: %w", what, repositories.ErrInvalid)
	default:
		return fmt.Errorf("error writing %s: %w", what, err)
	}
}

// readError maps single-row read failures
func readError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) || dberrors.IsInvalidTextRepresentation(err) {
		return repositories.ErrNotFound
	}
	return fmt.Errorf("error reading %s: %w", what, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
