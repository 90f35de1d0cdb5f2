package memory

import (
	"context"
	"sort"

	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/repositories"
)

type newsRepository struct {
	db *DB
}

func copyNews(n *models.News) *models.News {
	out := *n
	out.ImageURL = strPtr(n.ImageURL)
	return &out
}

func (r *newsRepository) Create(_ context.Context, news *models.News) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	news.ID = r.db.nextID()
	news.CreatedAt = now
	news.UpdatedAt = now
	r.db.news[news.ID] = copyNews(news)
	return nil
}

func (r *newsRepository) Update(_ context.Context, news *models.News) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.news[news.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	news.CreatedAt = existing.CreatedAt
	news.UpdatedAt = r.db.now()
	r.db.news[news.ID] = copyNews(news)
	return nil
}

func (r *newsRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.news[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.db.news, id)
	return nil
}

func (r *newsRepository) GetByID(_ context.Context, id int64) (*models.News, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n, ok := r.db.news[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyNews(n), nil
}

func (r *newsRepository) List(_ context.Context, opts models.ListOptions) ([]*models.News, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*models.News, 0, len(r.db.news))
	for _, n := range r.db.news {
		out = append(out, copyNews(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, opts), int64(len(out)), nil
}

type galleryRepository struct {
	db *DB
}

func copyGalleryItem(g *models.GalleryItem) *models.GalleryItem {
	out := *g
	out.Description = strPtr(g.Description)
	return &out
}

func (r *galleryRepository) Create(_ context.Context, item *models.GalleryItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item.ID = r.db.nextID()
	item.CreatedAt = r.db.now()
	r.db.gallery[item.ID] = copyGalleryItem(item)
	return nil
}

func (r *galleryRepository) Update(_ context.Context, item *models.GalleryItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.gallery[item.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	r.db.gallery[item.ID] = copyGalleryItem(item)
	return nil
}

func (r *galleryRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.gallery[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.db.gallery, id)
	return nil
}

func (r *galleryRepository) GetByID(_ context.Context, id int64) (*models.GalleryItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	g, ok := r.db.gallery[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyGalleryItem(g), nil
}

func (r *galleryRepository) List(_ context.Context) ([]*models.GalleryItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*models.GalleryItem, 0, len(r.db.gallery))
	for _, g := range r.db.gallery {
		out = append(out, copyGalleryItem(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type reportRepository struct {
	db *DB
}

func copyReport(rep *models.AccountingReport) *models.AccountingReport {
	out := *rep
	out.Description = strPtr(rep.Description)
	out.FileURL = strPtr(rep.FileURL)
	return &out
}

func (r *reportRepository) Create(_ context.Context, report *models.AccountingReport) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	report.ID = r.db.nextID()
	report.CreatedAt = now
	report.UpdatedAt = now
	r.db.reports[report.ID] = copyReport(report)
	return nil
}

func (r *reportRepository) Update(_ context.Context, report *models.AccountingReport) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.reports[report.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	report.CreatedAt = existing.CreatedAt
	report.UpdatedAt = r.db.now()
	r.db.reports[report.ID] = copyReport(report)
	return nil
}

func (r *reportRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.reports[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.db.reports, id)
	return nil
}

func (r *reportRepository) GetByID(_ context.Context, id int64) (*models.AccountingReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rep, ok := r.db.reports[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyReport(rep), nil
}

func (r *reportRepository) List(_ context.Context) ([]*models.AccountingReport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*models.AccountingReport, 0, len(r.db.reports))
	for _, rep := range r.db.reports {
		out = append(out, copyReport(rep))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReportDate.Equal(out[j].ReportDate) {
			return out[i].ReportDate.After(out[j].ReportDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
