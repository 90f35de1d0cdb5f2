package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/dberrors"
	"github.com/yigit/campusportal/internal/pkg/logger"
)

// EnrollmentRepository handles student_courses rows
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectEnrollments joins the course and the student's name
func (r *EnrollmentRepository) selectEnrollments() squirrel.SelectBuilder {
	return r.sb.Select(
		"sc.id", "sc.student_id", "sc.course_id", "sc.enrollment_date", "sc.status", "sc.grade", "sc.created_at", "sc.updated_at",
		"p.full_name",
		"c.id", "c.course_code", "c.title", "c.credits", "c.description", "c.created_at", "c.updated_at",
	).
		From("student_courses sc").
		Join("courses c ON c.id = sc.course_id").
		LeftJoin("profiles p ON p.id = sc.student_id")
}

func scanEnrollment(row pgx.Row) (*models.StudentCourse, error) {
	e := &models.StudentCourse{Course: &models.Course{}}
	err := row.Scan(
		&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status, &e.Grade, &e.CreatedAt, &e.UpdatedAt,
		&e.StudentName,
		&e.Course.ID, &e.Course.CourseCode, &e.Course.Title, &e.Course.Credits, &e.Course.Description, &e.Course.CreatedAt, &e.Course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts an enrollment. The partial unique index on active rows
// turns a concurrent duplicate into a unique violation.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.StudentCourse) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("student_courses").
		Columns("student_id", "course_id", "enrollment_date", "status", "grade", "created_at", "updated_at").
		Values(enrollment.StudentID, enrollment.CourseID, enrollment.EnrollmentDate, enrollment.Status, enrollment.Grade, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt); err != nil {
		return insertError(err, "enrollment")
	}
	return nil
}

// GetByID returns an enrollment with its course and student name
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.StudentCourse, error) {
	sql, args, err := r.selectEnrollments().Where(squirrel.Eq{"sc.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "enrollment")
	}
	return e, nil
}

// FindActive returns the active enrollment of the pair
func (r *EnrollmentRepository) FindActive(ctx context.Context, studentID string, courseID int64) (*models.StudentCourse, error) {
	sql, args, err := r.selectEnrollments().
		Where(squirrel.Eq{"sc.student_id": studentID, "sc.course_id": courseID, "sc.status": models.EnrollmentActive}).
		OrderBy("sc.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find active enrollment query: %w", err)
	}

	e, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "enrollment")
	}
	return e, nil
}

// SetStatus updates the status of one enrollment row
func (r *EnrollmentRepository) SetStatus(ctx context.Context, id int64, status models.EnrollmentStatus, at time.Time) error {
	sql, args, err := r.sb.Update("student_courses").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set enrollment status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("active enrollment: %w", repositories.ErrDuplicate)
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error updating enrollment status")
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// WithdrawActiveByPair withdraws every active row of the pair
func (r *EnrollmentRepository) WithdrawActiveByPair(ctx context.Context, studentID string, courseID int64, at time.Time) (int64, error) {
	sql, args, err := r.sb.Update("student_courses").
		Set("status", models.EnrollmentWithdrawn).
		Set("updated_at", at).
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID, "status": models.EnrollmentActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build withdraw enrollment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Int64("courseID", courseID).Msg("Error withdrawing enrollments")
		return 0, fmt.Errorf("error withdrawing enrollments: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes an enrollment row and returns what was deleted
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) (*models.StudentCourse, error) {
	sql, args, err := r.sb.Delete("student_courses").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, student_id, course_id, enrollment_date, status, grade, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	e := &models.StudentCourse{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status, &e.Grade, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, readError(err, "enrollment")
	}
	return e, nil
}

// List returns enrollments newest enrollment date first
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.StudentCourse, error) {
	qb := r.selectEnrollments().OrderBy("sc.enrollment_date DESC", "sc.id DESC")
	if filter.StudentID != "" {
		qb = qb.Where(squirrel.Eq{"sc.student_id": filter.StudentID})
	}
	if filter.CourseID != 0 {
		qb = qb.Where(squirrel.Eq{"sc.course_id": filter.CourseID})
	}
	if filter.Status != "" {
		qb = qb.Where(squirrel.Eq{"sc.status": filter.Status})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying enrollments")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	out := []*models.StudentCourse{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return out, nil
}
