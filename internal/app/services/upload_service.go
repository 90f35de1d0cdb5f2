package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/filestorage"
	"github.com/yigit/campusportal/internal/pkg/media"
)

const (
	MsgFileRequired    = "File is required"
	MsgFileTooLarge    = "File is too large"
	MsgFileUnsupported = "Unsupported file type"

	imageDir    = "images"
	documentDir = "documents"
)

// UploadService stores images and report documents and returns their public URLs
type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
	UploadDocument(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadServiceImpl struct {
	storage  filestorage.FileStorage
	maxBytes int64
	images   media.Options
	logger   zerolog.Logger
}

// NewUploadService creates a new upload service instance
func NewUploadService(storage filestorage.FileStorage, maxBytes int64, images media.Options, logger zerolog.Logger) UploadService {
	return &uploadServiceImpl{
		storage:  storage,
		maxBytes: maxBytes,
		images:   images,
		logger:   logger.With().Str("service", "upload").Logger(),
	}
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, filestorage.ErrEmptyFile):
		return apperrors.NewValidationError(MsgFileRequired).WithField("file")
	case errors.Is(err, filestorage.ErrFileTooLarge):
		return apperrors.NewValidationError(MsgFileTooLarge).WithField("file")
	case errors.Is(err, filestorage.ErrUnsupportedType):
		return apperrors.NewValidationError(MsgFileUnsupported).WithField("file")
	}
	return apperrors.NewDownstreamError(err, "Failed to read uploaded file")
}

// UploadImage accepts jpeg, png, gif and webp. Oversized jpeg and png
// images are scaled down before they are stored.
func (s *uploadServiceImpl) UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	upload, err := filestorage.ReadUpload(file, s.maxBytes, filestorage.ImageTypes)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Rejected image upload")
		return nil, uploadError(err)
	}

	data, resized, err := media.Normalize(upload.Data, upload.MimeType, s.images)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", upload.Filename).Msg("Image could not be decoded")
		return nil, apperrors.NewValidationError(MsgFileUnsupported).WithField("file")
	}

	return s.save(imageDir, upload, data, resized)
}

// UploadDocument accepts report documents
func (s *uploadServiceImpl) UploadDocument(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	upload, err := filestorage.ReadUpload(file, s.maxBytes, filestorage.DocumentTypes)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Rejected document upload")
		return nil, uploadError(err)
	}
	return s.save(documentDir, upload, upload.Data, false)
}

func (s *uploadServiceImpl) save(dir string, upload *filestorage.Upload, data []byte, resized bool) (*dto.UploadResponse, error) {
	url, err := s.storage.Save(dir, upload.Extension, bytes.NewReader(data))
	if err != nil {
		s.logger.Error().Err(err).Str("dir", dir).Msg("Failed to store upload")
		return nil, apperrors.NewDownstreamError(err, "Failed to store uploaded file")
	}

	s.logger.Info().
		Str("url", url).
		Str("mimeType", upload.MimeType).
		Int("bytes", len(data)).
		Bool("resized", resized).
		Msg("File uploaded")
	return &dto.UploadResponse{URL: url, MimeType: upload.MimeType, Resized: resized}, nil
}
