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

// NewsRepository handles news rows
type NewsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var newsColumns = []string{"id", "title", "content", "image_url", "created_at", "updated_at"}

func scanNews(row pgx.Row) (*models.News, error) {
	n := &models.News{}
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts an article
func (r *NewsRepository) Create(ctx context.Context, news *models.News) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("news").
		Columns("title", "content", "image_url", "created_at", "updated_at").
		Values(news.Title, news.Content, news.ImageURL, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create news query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&news.ID, &news.CreatedAt, &news.UpdatedAt); err != nil {
		return insertError(err, "news")
	}
	return nil
}

// Update rewrites an article
func (r *NewsRepository) Update(ctx context.Context, news *models.News) error {
	sql, args, err := r.sb.Update("news").
		Set("title", news.Title).
		Set("content", news.Content).
		Set("image_url", news.ImageURL).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": news.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update news query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&news.CreatedAt, &news.UpdatedAt); err != nil {
		return readError(err, "news")
	}
	return nil
}

// Delete removes an article
func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "news", id)
}

// GetByID returns one article
func (r *NewsRepository) GetByID(ctx context.Context, id int64) (*models.News, error) {
	sql, args, err := r.sb.Select(newsColumns...).From("news").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get news query: %w", err)
	}
	n, err := scanNews(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "news")
	}
	return n, nil
}

// List returns one page of articles, newest first, and the total count
func (r *NewsRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.News, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM news").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting news: %w", err)
	}

	qb := r.sb.Select(newsColumns...).From("news").OrderBy("id DESC")
	if opts.Limit > 0 {
		qb = qb.Limit(uint64(opts.Limit)).Offset(uint64(opts.Offset))
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list news query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying news")
		return nil, 0, fmt.Errorf("error querying news: %w", err)
	}
	defer rows.Close()

	out := []*models.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning news row: %w", err)
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

// GalleryRepository handles gallery rows
type GalleryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var galleryColumns = []string{"id", "title", "description", "image_url", "created_at"}

func scanGalleryItem(row pgx.Row) (*models.GalleryItem, error) {
	g := &models.GalleryItem{}
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL, &g.CreatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

// Create inserts a gallery item
func (r *GalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	sql, args, err := r.sb.Insert("gallery").
		Columns("title", "description", "image_url", "created_at").
		Values(item.Title, item.Description, item.ImageURL, time.Now().UTC()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create gallery query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return insertError(err, "gallery item")
	}
	return nil
}

// Update rewrites a gallery item
func (r *GalleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	sql, args, err := r.sb.Update("gallery").
		Set("title", item.Title).
		Set("description", item.Description).
		Set("image_url", item.ImageURL).
		Where(squirrel.Eq{"id": item.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update gallery query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&item.CreatedAt); err != nil {
		return readError(err, "gallery item")
	}
	return nil
}

// Delete removes a gallery item
func (r *GalleryRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "gallery", id)
}

// GetByID returns one gallery item
func (r *GalleryRepository) GetByID(ctx context.Context, id int64) (*models.GalleryItem, error) {
	sql, args, err := r.sb.Select(galleryColumns...).From("gallery").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get gallery query: %w", err)
	}
	g, err := scanGalleryItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "gallery item")
	}
	return g, nil
}

// List returns gallery items newest first
func (r *GalleryRepository) List(ctx context.Context) ([]*models.GalleryItem, error) {
	sql, args, err := r.sb.Select(galleryColumns...).From("gallery").OrderBy("id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list gallery query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying gallery")
		return nil, fmt.Errorf("error querying gallery: %w", err)
	}
	defer rows.Close()

	out := []*models.GalleryItem{}
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning gallery row: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ReportRepository handles accounting report rows
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var reportColumns = []string{"id", "title", "description", "file_url", "report_date", "created_at", "updated_at"}

func scanReport(row pgx.Row) (*models.AccountingReport, error) {
	rp := &models.AccountingReport{}
	if err := row.Scan(&rp.ID, &rp.Title, &rp.Description, &rp.FileURL, &rp.ReportDate, &rp.CreatedAt, &rp.UpdatedAt); err != nil {
		return nil, err
	}
	return rp, nil
}

// Create inserts a report
func (r *ReportRepository) Create(ctx context.Context, report *models.AccountingReport) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("accounting_reports").
		Columns("title", "description", "file_url", "report_date", "created_at", "updated_at").
		Values(report.Title, report.Description, report.FileURL, report.ReportDate, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create report query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt); err != nil {
		return insertError(err, "report")
	}
	return nil
}

// Update rewrites a report
func (r *ReportRepository) Update(ctx context.Context, report *models.AccountingReport) error {
	sql, args, err := r.sb.Update("accounting_reports").
		Set("title", report.Title).
		Set("description", report.Description).
		Set("file_url", report.FileURL).
		Set("report_date", report.ReportDate).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": report.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update report query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&report.CreatedAt, &report.UpdatedAt); err != nil {
		return readError(err, "report")
	}
	return nil
}

// Delete removes a report
func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "accounting_reports", id)
}

// GetByID returns one report
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.AccountingReport, error) {
	sql, args, err := r.sb.Select(reportColumns...).From("accounting_reports").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}
	rp, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, readError(err, "report")
	}
	return rp, nil
}

// List returns reports newest report date first
func (r *ReportRepository) List(ctx context.Context) ([]*models.AccountingReport, error) {
	sql, args, err := r.sb.Select(reportColumns...).From("accounting_reports").OrderBy("report_date DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying reports")
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	out := []*models.AccountingReport{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

// deleteByID deletes one row of table by id. table is always a constant.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table string, id int64) error {
	tag, err := pool.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Int64("id", id).Msg("Error deleting row")
		return fmt.Errorf("error deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
