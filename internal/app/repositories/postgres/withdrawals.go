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
	"github.com/yigit/campusportal/internal/pkg/logger"
)

// WithdrawalRepository handles course withdrawal rows
type WithdrawalRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewWithdrawalRepository creates a new WithdrawalRepository
func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *WithdrawalRepository) selectWithdrawals() squirrel.SelectBuilder {
	return r.sb.Select(
		"w.id", "w.student_id", "w.course_id", "w.student_course_id", "w.withdrawal_date", "w.reason", "w.status", "w.created_at", "w.updated_at",
		"c.id", "c.course_code", "c.title", "c.credits", "c.description", "c.created_at", "c.updated_at",
	).
		From("withdrawals w").
		Join("courses c ON c.id = w.course_id")
}

func scanWithdrawal(row pgx.Row) (*models.Withdrawal, error) {
	w := &models.Withdrawal{Course: &models.Course{}}
	err := row.Scan(
		&w.ID, &w.StudentID, &w.CourseID, &w.StudentCourseID, &w.WithdrawalDate, &w.Reason, &w.Status, &w.CreatedAt, &w.UpdatedAt,
		&w.Course.ID, &w.Course.CourseCode, &w.Course.Title, &w.Course.Credits, &w.Course.Description, &w.Course.CreatedAt, &w.Course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a withdrawal. A second pending row for the same pair hits
// the partial unique index and comes back as ErrDuplicate.
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("withdrawals").
		Columns("student_id", "course_id", "student_course_id", "withdrawal_date", "reason", "status", "created_at", "updated_at").
		Values(withdrawal.StudentID, withdrawal.CourseID, withdrawal.StudentCourseID, withdrawal.WithdrawalDate,
			withdrawal.Reason, withdrawal.Status, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create withdrawal query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&withdrawal.ID, &withdrawal.CreatedAt, &withdrawal.UpdatedAt); err != nil {
		return insertError(err, "withdrawal")
	}
	return nil
}

// GetByID returns one withdrawal with its course
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*models.Withdrawal, error) {
	sql, args, err := r.selectWithdrawals().Where(squirrel.Eq{"w.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get withdrawal query: %w", err)
	}

	w, err := scanWithdrawal(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "withdrawal")
	}
	return w, nil
}

// Transition is a compare-and-set on the status column
func (r *WithdrawalRepository) Transition(ctx context.Context, id int64, from, to models.WithdrawalStatus, at time.Time) error {
	sql, args, err := r.sb.Update("withdrawals").
		Set("status", to).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build transition withdrawal query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("withdrawalID", id).Msg("Error updating withdrawal status")
		return fmt.Errorf("error updating withdrawal status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM withdrawals WHERE id = $1)", id).Scan(&exists); err != nil {
		return fmt.Errorf("error checking withdrawal: %w", err)
	}
	if exists {
		return repositories.ErrStaleState
	}
	return repositories.ErrNotFound
}

// Delete removes a withdrawal
func (r *WithdrawalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM withdrawals WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("withdrawalID", id).Msg("Error deleting withdrawal")
		return fmt.Errorf("error deleting withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List returns withdrawals newest first
func (r *WithdrawalRepository) List(ctx context.Context, filter models.WithdrawalFilter) ([]*models.Withdrawal, error) {
	qb := r.selectWithdrawals().OrderBy("w.id DESC")
	if filter.StudentID != "" {
		qb = qb.Where(squirrel.Eq{"w.student_id": filter.StudentID})
	}
	if filter.CourseID != 0 {
		qb = qb.Where(squirrel.Eq{"w.course_id": filter.CourseID})
	}
	if filter.Status != "" {
		qb = qb.Where(squirrel.Eq{"w.status": filter.Status})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list withdrawals query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying withdrawals")
		return nil, fmt.Errorf("error querying withdrawals: %w", err)
	}
	defer rows.Close()

	out := []*models.Withdrawal{}
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning withdrawal row: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
