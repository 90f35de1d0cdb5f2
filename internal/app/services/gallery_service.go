package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
)

const (
	MsgGalleryCreateRequired = "Title and image URL are required"
	MsgGalleryUpdateRequired = "ID, title, and image URL are required"
	MsgGalleryNotFound       = "Gallery item not found"
)

// GalleryService manages the public image gallery
type GalleryService interface {
	CreateItem(ctx context.Context, form *dto.GalleryForm) (*models.GalleryItem, error)
	UpdateItem(ctx context.Context, form *dto.GalleryForm) (*models.GalleryItem, error)
	DeleteItem(ctx context.Context, form *dto.IDForm) error
	ListItems(ctx context.Context) ([]*models.GalleryItem, error)
}

type galleryServiceImpl struct {
	gallery  repositories.GalleryRepository
	notifier revalidate.Notifier
	logger   zerolog.Logger
}

// NewGalleryService creates a new gallery service instance
func NewGalleryService(gallery repositories.GalleryRepository, notifier revalidate.Notifier, logger zerolog.Logger) GalleryService {
	return &galleryServiceImpl{
		gallery:  gallery,
		notifier: notifier,
		logger:   logger.With().Str("service", "gallery").Logger(),
	}
}

func (s *galleryServiceImpl) CreateItem(ctx context.Context, form *dto.GalleryForm) (*models.GalleryItem, error) {
	if form.Title.Empty() || form.ImageURL.Empty() {
		return nil, apperrors.NewValidationError(MsgGalleryCreateRequired)
	}

	item := &models.GalleryItem{
		Title:       form.Title.String(),
		Description: form.Description.Ptr(),
		ImageURL:    form.ImageURL.String(),
	}
	if err := s.gallery.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create gallery item")
		return nil, apperrors.NewDownstreamError(err, "Failed to create gallery item")
	}

	s.logger.Info().Int64("galleryID", item.ID).Msg("Gallery item created")
	s.notifier.Revalidate(ctx, revalidate.PathGallery, revalidate.PathDashboardGallery)
	return item, nil
}

func (s *galleryServiceImpl) UpdateItem(ctx context.Context, form *dto.GalleryForm) (*models.GalleryItem, error) {
	id, ok := parseID(form.ID)
	if !ok || form.Title.Empty() || form.ImageURL.Empty() {
		return nil, apperrors.NewValidationError(MsgGalleryUpdateRequired)
	}

	item := &models.GalleryItem{
		ID:          id,
		Title:       form.Title.String(),
		Description: form.Description.Ptr(),
		ImageURL:    form.ImageURL.String(),
	}
	if err := s.gallery.Update(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgGalleryNotFound)
		}
		s.logger.Error().Err(err).Int64("galleryID", id).Msg("Failed to update gallery item")
		return nil, apperrors.NewDownstreamError(err, "Failed to update gallery item")
	}

	s.logger.Info().Int64("galleryID", id).Msg("Gallery item updated")
	s.notifier.Revalidate(ctx, revalidate.PathGallery, revalidate.PathDashboardGallery)
	return item, nil
}

func (s *galleryServiceImpl) DeleteItem(ctx context.Context, form *dto.IDForm) error {
	id, ok := parseID(form.ID)
	if !ok {
		return apperrors.NewValidationError(MsgIDRequired)
	}

	if err := s.gallery.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgGalleryNotFound)
		}
		s.logger.Error().Err(err).Int64("galleryID", id).Msg("Failed to delete gallery item")
		return apperrors.NewDownstreamError(err, "Failed to delete gallery item")
	}

	s.logger.Info().Int64("galleryID", id).Msg("Gallery item deleted")
	s.notifier.Revalidate(ctx, revalidate.PathGallery, revalidate.PathDashboardGallery)
	return nil
}

func (s *galleryServiceImpl) ListItems(ctx context.Context) ([]*models.GalleryItem, error) {
	items, err := s.gallery.List(ctx)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load gallery")
	}
	return items, nil
}
