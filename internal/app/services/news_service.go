package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/helpers"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

const (
	MsgNewsCreateRequired = "Title and content are required"
	MsgNewsUpdateRequired = "ID, title, and content are required"
	MsgNewsNotFound       = "News article not found"
)

// NewsService manages news articles
type NewsService interface {
	CreateNews(ctx context.Context, form *dto.NewsForm) (*models.News, error)
	UpdateNews(ctx context.Context, form *dto.NewsForm) (*models.News, error)
	DeleteNews(ctx context.Context, form *dto.IDForm) error
	GetNews(ctx context.Context, id int64) (*models.News, error)
	ListNews(ctx context.Context, page, pageSize int) (*dto.NewsListResponse, error)
}

type newsServiceImpl struct {
	news     repositories.NewsRepository
	notifier revalidate.Notifier
	logger   zerolog.Logger
}

// NewNewsService creates a new news service instance
func NewNewsService(news repositories.NewsRepository, notifier revalidate.Notifier, logger zerolog.Logger) NewsService {
	return &newsServiceImpl{
		news:     news,
		notifier: notifier,
		logger:   logger.With().Str("service", "news").Logger(),
	}
}

func (s *newsServiceImpl) CreateNews(ctx context.Context, form *dto.NewsForm) (*models.News, error) {
	if form.Title.Empty() || form.Content.Empty() {
		return nil, apperrors.NewValidationError(MsgNewsCreateRequired)
	}

	news := &models.News{
		Title:    form.Title.String(),
		Content:  form.Content.String(),
		ImageURL: form.ImageURL.Ptr(),
	}
	if err := s.news.Create(ctx, news); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create news article")
		return nil, apperrors.NewDownstreamError(err, "Failed to create news article")
	}

	s.logger.Info().Int64("newsID", news.ID).Msg("News article created")
	s.notifier.Revalidate(ctx, revalidate.PathNews, revalidate.PathDashboardNews)
	return news, nil
}

func (s *newsServiceImpl) UpdateNews(ctx context.Context, form *dto.NewsForm) (*models.News, error) {
	id, ok := parseID(form.ID)
	if !ok || form.Title.Empty() || form.Content.Empty() {
		return nil, apperrors.NewValidationError(MsgNewsUpdateRequired)
	}

	news := &models.News{
		ID:       id,
		Title:    form.Title.String(),
		Content:  form.Content.String(),
		ImageURL: form.ImageURL.Ptr(),
	}
	if err := s.news.Update(ctx, news); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgNewsNotFound)
		}
		s.logger.Error().Err(err).Int64("newsID", id).Msg("Failed to update news article")
		return nil, apperrors.NewDownstreamError(err, "Failed to update news article")
	}

	s.logger.Info().Int64("newsID", id).Msg("News article updated")
	s.notifier.Revalidate(ctx, revalidate.PathNews, revalidate.NewsPath(idString(id)), revalidate.PathDashboardNews)
	return news, nil
}

func (s *newsServiceImpl) DeleteNews(ctx context.Context, form *dto.IDForm) error {
	id, ok := parseID(form.ID)
	if !ok {
		return apperrors.NewValidationError(MsgIDRequired)
	}

	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgNewsNotFound)
		}
		s.logger.Error().Err(err).Int64("newsID", id).Msg("Failed to delete news article")
		return apperrors.NewDownstreamError(err, "Failed to delete news article")
	}

	s.logger.Info().Int64("newsID", id).Msg("News article deleted")
	s.notifier.Revalidate(ctx, revalidate.PathNews, revalidate.PathDashboardNews)
	return nil
}

func (s *newsServiceImpl) GetNews(ctx context.Context, id int64) (*models.News, error) {
	news, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgNewsNotFound)
		}
		return nil, apperrors.NewDownstreamError(err, "Failed to load news article")
	}
	return news, nil
}

// ListNews returns one page of articles, newest first
func (s *newsServiceImpl) ListNews(ctx context.Context, page, pageSize int) (*dto.NewsListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	news, total, err := s.news.List(ctx, models.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load news")
	}
	return &dto.NewsListResponse{
		News:       news,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}
