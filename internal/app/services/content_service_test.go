package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

func TestNewsService_Mutations(t *testing.T) {
	f := newFixture(t)
	svc := NewNewsService(f.store.News, f.recorder, f.log)

	_, err := svc.CreateNews(f.ctx, &dto.NewsForm{Title: "Open day"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgNewsCreateRequired)

	news, err := svc.CreateNews(f.ctx, &dto.NewsForm{Title: "Open day", Content: "Saturday at 10"})
	require.NoError(t, err)
	assert.Nil(t, news.ImageURL)
	assert.Equal(t, []string{revalidate.PathNews, revalidate.PathDashboardNews}, f.recorder.Paths())

	f.recorder.Reset()
	id := dto.FormValue(idString(news.ID))
	_, err = svc.UpdateNews(f.ctx, &dto.NewsForm{ID: id, Title: "Open day", Content: "Moved to Sunday", ImageURL: "/uploads/images/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{revalidate.PathNews, revalidate.NewsPath(idString(news.ID)), revalidate.PathDashboardNews}, f.recorder.Paths())

	stored, err := svc.GetNews(f.ctx, news.ID)
	require.NoError(t, err)
	assert.Equal(t, "Moved to Sunday", stored.Content)
	require.NotNil(t, stored.ImageURL)

	_, err = svc.UpdateNews(f.ctx, &dto.NewsForm{Title: "x", Content: "y"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgNewsUpdateRequired)
	_, err = svc.UpdateNews(f.ctx, &dto.NewsForm{ID: "9999", Title: "x", Content: "y"})
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgNewsNotFound)

	require.NoError(t, svc.DeleteNews(f.ctx, &dto.IDForm{ID: id}))
	_, err = svc.GetNews(f.ctx, news.ID)
	requireAppError(t, err, apperrors.ErrResourceNotFound, MsgNewsNotFound)
	requireAppError(t, svc.DeleteNews(f.ctx, &dto.IDForm{}), apperrors.ErrValidationFailed, MsgIDRequired)
}

func TestNewsService_ListPages(t *testing.T) {
	f := newFixture(t)
	svc := NewNewsService(f.store.News, f.recorder, f.log)
	for i := 1; i <= 5; i++ {
		_, err := svc.CreateNews(f.ctx, &dto.NewsForm{Title: dto.FormValue(fmt.Sprintf("Article %d", i)), Content: "body"})
		require.NoError(t, err)
	}

	page, err := svc.ListNews(f.ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.News, 2)
	assert.Equal(t, "Article 5", page.News[0].Title)
	assert.Equal(t, int64(5), page.Pagination.TotalItems)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	last, err := svc.ListNews(f.ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.News, 1)
	assert.Equal(t, "Article 1", last.News[0].Title)
}

func TestGalleryService(t *testing.T) {
	f := newFixture(t)
	svc := NewGalleryService(f.store.Gallery, f.recorder, f.log)

	_, err := svc.CreateItem(f.ctx, &dto.GalleryForm{Title: "Campus"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgGalleryCreateRequired)

	item, err := svc.CreateItem(f.ctx, &dto.GalleryForm{Title: "Campus", ImageURL: "/uploads/images/c.jpg"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(f.ctx, &dto.GalleryForm{ID: dto.FormValue(idString(item.ID)), Title: "Campus"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgGalleryUpdateRequired)

	_, err = svc.UpdateItem(f.ctx, &dto.GalleryForm{ID: dto.FormValue(idString(item.ID)), Title: "Campus at dusk", Description: "Main hall", ImageURL: "/uploads/images/d.jpg"})
	require.NoError(t, err)

	items, err := svc.ListItems(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Campus at dusk", items[0].Title)

	require.NoError(t, svc.DeleteItem(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(item.ID))}))
	requireAppError(t, svc.DeleteItem(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(item.ID))}), apperrors.ErrResourceNotFound, MsgGalleryNotFound)

	for _, p := range f.recorder.Paths() {
		assert.Contains(t, []string{revalidate.PathGallery, revalidate.PathDashboardGallery}, p)
	}
	assert.Equal(t, 3, f.recorder.Calls())
}

func TestReportService(t *testing.T) {
	f := newFixture(t)
	svc := NewReportService(f.store.Reports, f.recorder, f.log)

	_, err := svc.CreateReport(f.ctx, &dto.ReportForm{Title: "Q3"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgReportCreateRequired)
	_, err = svc.CreateReport(f.ctx, &dto.ReportForm{Title: "Q3", ReportDate: "30/09/2024"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgReportCreateRequired)

	q3, err := svc.CreateReport(f.ctx, &dto.ReportForm{Title: "Q3", ReportDate: "2024-09-30"})
	require.NoError(t, err)
	_, err = svc.CreateReport(f.ctx, &dto.ReportForm{Title: "Q4", ReportDate: "2024-12-31", FileURL: "/uploads/documents/q4.pdf"})
	require.NoError(t, err)

	reports, err := svc.ListReports(f.ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Q4", reports[0].Title)

	_, err = svc.UpdateReport(f.ctx, &dto.ReportForm{ID: dto.FormValue(idString(q3.ID)), Title: "Q3 final"})
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgReportUpdateRequired)
	_, err = svc.UpdateReport(f.ctx, &dto.ReportForm{ID: dto.FormValue(idString(q3.ID)), Title: "Q3 final", ReportDate: "2024-09-30"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReport(f.ctx, &dto.IDForm{ID: dto.FormValue(idString(q3.ID))}))
	assert.Equal(t, []string{revalidate.PathReports, revalidate.PathDashboardReports}, f.recorder.Paths()[:2])
}
