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
	MsgReportCreateRequired = "Title and report date are required"
	MsgReportUpdateRequired = "ID, title, and report date are required"
	MsgReportNotFound       = "Report not found"
)

// ReportService manages published accounting reports
type ReportService interface {
	CreateReport(ctx context.Context, form *dto.ReportForm) (*models.AccountingReport, error)
	UpdateReport(ctx context.Context, form *dto.ReportForm) (*models.AccountingReport, error)
	DeleteReport(ctx context.Context, form *dto.IDForm) error
	ListReports(ctx context.Context) ([]*models.AccountingReport, error)
}

type reportServiceImpl struct {
	reports  repositories.ReportRepository
	notifier revalidate.Notifier
	logger   zerolog.Logger
}

// NewReportService creates a new report service instance
func NewReportService(reports repositories.ReportRepository, notifier revalidate.Notifier, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		reports:  reports,
		notifier: notifier,
		logger:   logger.With().Str("service", "report").Logger(),
	}
}

func (s *reportServiceImpl) CreateReport(ctx context.Context, form *dto.ReportForm) (*models.AccountingReport, error) {
	reportDate, ok := parseDate(form.ReportDate)
	if form.Title.Empty() || !ok {
		return nil, apperrors.NewValidationError(MsgReportCreateRequired)
	}

	report := &models.AccountingReport{
		Title:       form.Title.String(),
		Description: form.Description.Ptr(),
		FileURL:     form.FileURL.Ptr(),
		ReportDate:  reportDate,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create report")
		return nil, apperrors.NewDownstreamError(err, "Failed to create report")
	}

	s.logger.Info().Int64("reportID", report.ID).Msg("Report created")
	s.notifier.Revalidate(ctx, revalidate.PathReports, revalidate.PathDashboardReports)
	return report, nil
}

func (s *reportServiceImpl) UpdateReport(ctx context.Context, form *dto.ReportForm) (*models.AccountingReport, error) {
	id, idOK := parseID(form.ID)
	reportDate, dateOK := parseDate(form.ReportDate)
	if !idOK || !dateOK || form.Title.Empty() {
		return nil, apperrors.NewValidationError(MsgReportUpdateRequired)
	}

	report := &models.AccountingReport{
		ID:          id,
		Title:       form.Title.String(),
		Description: form.Description.Ptr(),
		FileURL:     form.FileURL.Ptr(),
		ReportDate:  reportDate,
	}
	if err := s.reports.Update(ctx, report); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgReportNotFound)
		}
		s.logger.Error().Err(err).Int64("reportID", id).Msg("Failed to update report")
		return nil, apperrors.NewDownstreamError(err, "Failed to update report")
	}

	s.logger.Info().Int64("reportID", id).Msg("Report updated")
	s.notifier.Revalidate(ctx, revalidate.PathReports, revalidate.PathDashboardReports)
	return report, nil
}

func (s *reportServiceImpl) DeleteReport(ctx context.Context, form *dto.IDForm) error {
	id, ok := parseID(form.ID)
	if !ok {
		return apperrors.NewValidationError(MsgIDRequired)
	}

	if err := s.reports.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgReportNotFound)
		}
		s.logger.Error().Err(err).Int64("reportID", id).Msg("Failed to delete report")
		return apperrors.NewDownstreamError(err, "Failed to delete report")
	}

	s.logger.Info().Int64("reportID", id).Msg("Report deleted")
	s.notifier.Revalidate(ctx, revalidate.PathReports, revalidate.PathDashboardReports)
	return nil
}

func (s *reportServiceImpl) ListReports(ctx context.Context) ([]*models.AccountingReport, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, apperrors.NewDownstreamError(err, "Failed to load reports")
	}
	return reports, nil
}
