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

// ScholarshipRepository handles scholarship rows
type ScholarshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScholarshipRepository creates a new ScholarshipRepository
func NewScholarshipRepository(db *pgxpool.Pool) *ScholarshipRepository {
	return &ScholarshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ScholarshipRepository) selectScholarships() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.student_id", "s.name", "s.amount", "s.start_date", "s.end_date", "s.status", "s.description",
		"s.created_at", "s.updated_at", "p.full_name",
	).
		From("scholarships s").
		LeftJoin("profiles p ON p.id = s.student_id")
}

func scanScholarship(row pgx.Row) (*models.Scholarship, error) {
	s := &models.Scholarship{}
	err := row.Scan(&s.ID, &s.StudentID, &s.Name, &s.Amount, &s.StartDate, &s.EndDate, &s.Status, &s.Description,
		&s.CreatedAt, &s.UpdatedAt, &s.StudentName)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a scholarship
func (r *ScholarshipRepository) Create(ctx context.Context, s *models.Scholarship) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("scholarships").
		Columns("student_id", "name", "amount", "start_date", "end_date", "status", "description", "created_at", "updated_at").
		Values(s.StudentID, s.Name, s.Amount, s.StartDate, s.EndDate, s.Status, s.Description, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create scholarship query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return insertError(err, "scholarship")
	}
	return nil
}

// Update rewrites a scholarship
func (r *ScholarshipRepository) Update(ctx context.Context, s *models.Scholarship) error {
	sql, args, err := r.sb.Update("scholarships").
		SetMap(map[string]interface{}{
			"student_id":  s.StudentID,
			"name":        s.Name,
			"amount":      s.Amount,
			"start_date":  s.StartDate,
			"end_date":    s.EndDate,
			"status":      s.Status,
			"description": s.Description,
			"updated_at":  time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update scholarship query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return repositories.ErrNotFound
		}
		return insertError(err, "scholarship")
	}
	return nil
}

// Delete removes a scholarship and returns its student
func (r *ScholarshipRepository) Delete(ctx context.Context, id int64) (string, error) {
	var studentID string
	err := r.db.QueryRow(ctx, "DELETE FROM scholarships WHERE id = $1 RETURNING student_id", id).Scan(&studentID)
	if err != nil {
		return "", readError(err, "scholarship")
	}
	return studentID, nil
}

// GetByID returns one scholarship
func (r *ScholarshipRepository) GetByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	sql, args, err := r.selectScholarships().Where(squirrel.Eq{"s.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get scholarship query: %w", err)
	}
	s, err := scanScholarship(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "scholarship")
	}
	return s, nil
}

// List returns scholarships, newest start date first
func (r *ScholarshipRepository) List(ctx context.Context, studentID string) ([]*models.Scholarship, error) {
	qb := r.selectScholarships().OrderBy("s.start_date DESC", "s.id DESC")
	if studentID != "" {
		qb = qb.Where(squirrel.Eq{"s.student_id": studentID})
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list scholarships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying scholarships")
		return nil, fmt.Errorf("error querying scholarships: %w", err)
	}
	defer rows.Close()

	out := []*models.Scholarship{}
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning scholarship row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AllowanceRepository handles allowance rows
type AllowanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAllowanceRepository creates a new AllowanceRepository
func NewAllowanceRepository(db *pgxpool.Pool) *AllowanceRepository {
	return &AllowanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AllowanceRepository) selectAllowances() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.student_id", "a.type", "a.amount", "a.payment_date", "a.status", "a.description",
		"a.created_at", "a.updated_at", "p.full_name",
	).
		From("allowances a").
		LeftJoin("profiles p ON p.id = a.student_id")
}

func scanAllowance(row pgx.Row) (*models.Allowance, error) {
	a := &models.Allowance{}
	err := row.Scan(&a.ID, &a.StudentID, &a.Type, &a.Amount, &a.PaymentDate, &a.Status, &a.Description,
		&a.CreatedAt, &a.UpdatedAt, &a.StudentName)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an allowance
func (r *AllowanceRepository) Create(ctx context.Context, a *models.Allowance) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("allowances").
		Columns("student_id", "type", "amount", "payment_date", "status", "description", "created_at", "updated_at").
		Values(a.StudentID, a.Type, a.Amount, a.PaymentDate, a.Status, a.Description, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create allowance query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return insertError(err, "allowance")
	}
	return nil
}

// Update rewrites an allowance
func (r *AllowanceRepository) Update(ctx context.Context, a *models.Allowance) error {
	sql, args, err := r.sb.Update("allowances").
		SetMap(map[string]interface{}{
			"student_id":   a.StudentID,
			"type":         a.Type,
			"amount":       a.Amount,
			"payment_date": a.PaymentDate,
			"status":       a.Status,
			"description":  a.Description,
			"updated_at":   time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update allowance query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return repositories.ErrNotFound
		}
		return insertError(err, "allowance")
	}
	return nil
}

// Delete removes an allowance and returns its student
func (r *AllowanceRepository) Delete(ctx context.Context, id int64) (string, error) {
	var studentID string
	err := r.db.QueryRow(ctx, "DELETE FROM allowances WHERE id = $1 RETURNING student_id", id).Scan(&studentID)
	if err != nil {
		return "", readError(err, "allowance")
	}
	return studentID, nil
}

// GetByID returns one allowance
func (r *AllowanceRepository) GetByID(ctx context.Context, id int64) (*models.Allowance, error) {
	sql, args, err := r.selectAllowances().Where(squirrel.Eq{"a.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get allowance query: %w", err)
	}
	a, err := scanAllowance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "allowance")
	}
	return a, nil
}

// List returns allowances, newest payment first
func (r *AllowanceRepository) List(ctx context.Context, studentID string) ([]*models.Allowance, error) {
	qb := r.selectAllowances().OrderBy("a.payment_date DESC", "a.id DESC")
	if studentID != "" {
		qb = qb.Where(squirrel.Eq{"a.student_id": studentID})
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list allowances query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying allowances")
		return nil, fmt.Errorf("error querying allowances: %w", err)
	}
	defer rows.Close()

	out := []*models.Allowance{}
	for rows.Next() {
		a, err := scanAllowance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning allowance row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
