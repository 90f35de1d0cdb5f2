package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/db"
	"github.com/yigit/campusportal/internal/pkg/logger"
)

// IdentityRepository handles auth_users together with profiles
type IdentityRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(database *db.PostgresDB) *IdentityRepository {
	return &IdentityRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAccount inserts the auth user and its profile in one transaction
func (r *IdentityRepository) CreateAccount(ctx context.Context, user *models.AuthUser, profile *models.Profile) error {
	userSQL, userArgs, err := r.sb.Insert("auth_users").
		Columns("id", "email", "password_hash").
		Values(user.ID, user.Email, user.PasswordHash).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create auth user query: %w", err)
	}

	profileSQL, profileArgs, err := r.sb.Insert("profiles").
		Columns("id", "email", "full_name", "role", "is_active").
		Values(profile.ID, profile.Email, profile.FullName, profile.Role, profile.IsActive).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, userSQL, userArgs...).Scan(&user.CreatedAt); err != nil {
			return insertError(err, "auth user")
		}
		if err := tx.QueryRow(ctx, profileSQL, profileArgs...).Scan(&profile.CreatedAt); err != nil {
			return insertError(err, "profile")
		}
		return nil
	})
}

// GetAuthUserByEmail looks up credentials case-insensitively
func (r *IdentityRepository) GetAuthUserByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	sql, args, err := r.sb.Select("id", "email", "password_hash", "created_at", "last_sign_in_at").
		From("auth_users").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get auth user query: %w", err)
	}

	user := &models.AuthUser{}
	err = r.database.Pool.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.LastSignInAt)
	if err != nil {
		return nil, readError(err, "auth user")
	}
	return user, nil
}

// TouchSignIn records the latest successful sign-in
func (r *IdentityRepository) TouchSignIn(ctx context.Context, userID string, at time.Time) error {
	sql, args, err := r.sb.Update("auth_users").
		Set("last_sign_in_at", at).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build touch sign-in query: %w", err)
	}

	tag, err := r.database.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating last sign-in")
		return fmt.Errorf("error updating last sign-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ProfileRepository reads profiles
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var profileColumns = []string{"id", "email", "full_name", "role", "is_active", "created_at"}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns one profile
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "profile")
	}
	return p, nil
}

func profileWhere(filter repositories.ProfileFilter) squirrel.And {
	where := squirrel.And{}
	if filter.Role != "" {
		where = append(where, squirrel.Eq{"role": filter.Role})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := containsPattern(q)
		where = append(where, squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	return where
}

// List returns profiles newest first with the total match count
func (r *ProfileRepository) List(ctx context.Context, filter repositories.ProfileFilter, opts models.ListOptions) ([]*models.Profile, int64, error) {
	where := profileWhere(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("profiles").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count profiles query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting profiles")
		return nil, 0, fmt.Errorf("error counting profiles: %w", err)
	}

	qb := r.sb.Select(profileColumns...).From("profiles").Where(where).OrderBy("created_at DESC", "email ASC")
	if opts.Limit > 0 {
		qb = qb.Limit(uint64(opts.Limit)).Offset(uint64(opts.Offset))
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying profiles")
		return nil, 0, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, total, nil
}

// Count returns the number of profiles
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM profiles").Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting profiles: %w", err)
	}
	return n, nil
}

// SetRole changes the role of a profile
func (r *ProfileRepository) SetRole(ctx context.Context, id string, role models.Role) error {
	sql, args, err := r.sb.Update("profiles").Set("role", role).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set role query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id).Msg("Error updating profile role")
		return fmt.Errorf("error updating profile role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
