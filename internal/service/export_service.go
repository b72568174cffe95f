package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report-api/internal/dto"
	"github.com/noah-isme/classroom-report-api/pkg/export"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
)

// Formats accepted by the export endpoints.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type reportBuilder interface {
	BuildStudentSummary(ctx context.Context, req ReportRequest) (*dto.StudentSummaryReport, error)
	BuildMissingWorkReport(ctx context.Context, req ReportRequest) (*dto.MissingWorkReport, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, subtitles ...string) ([]byte, error)
}

// ExportArtifact is a rendered report ready to stream as a download. Nothing
// is written to disk; the bytes live for the request only.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the report views as CSV or PDF downloads.
type ExportService struct {
	reports reportBuilder
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(reports reportBuilder, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reports: reports, csv: csv, pdf: pdf, logger: logger}
}

// SummaryExport renders the student summary report in the requested format.
func (s *ExportService) SummaryExport(ctx context.Context, req ReportRequest, format string) (*ExportArtifact, error) {
	report, err := s.reports.BuildStudentSummary(ctx, req)
	if err != nil {
		return nil, err
	}

	data := activityDataset(report.Activities)
	title := fmt.Sprintf("Activity Summary - %s", report.Student.Name)
	subtitle := courseLine(report.Course.Name, report.Course.Section)

	return s.render(data, format, "student-summary", title, subtitle)
}

// MissingWorkExport renders the missing-work report in the requested format.
func (s *ExportService) MissingWorkExport(ctx context.Context, req ReportRequest, format string) (*ExportArtifact, error) {
	report, err := s.reports.BuildMissingWorkReport(ctx, req)
	if err != nil {
		return nil, err
	}

	data := activityDataset(report.Assignments)
	title := fmt.Sprintf("Missing Work - %s", report.Student.Name)
	subtitle := courseLine(report.Course.Name, report.Course.Section)

	return s.render(data, format, "missing-work", title, subtitle)
}

func (s *ExportService) render(data export.Dataset, format, prefix, title, subtitle string) (*ExportArtifact, error) {
	name := fmt.Sprintf("%s-%s.%s", prefix, uuid.NewString(), format)

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportArtifact{FileName: name, ContentType: "text/csv", Content: content}, nil
	case FormatPDF:
		content, err := s.pdf.Render(data, title, subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportArtifact{FileName: name, ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func activityDataset(activities []dto.Activity) export.Dataset {
	headers := []string{"Title", "Type", "Due", "Status", "Submitted", "Grade"}
	rows := make([]map[string]string, 0, len(activities))
	for _, activity := range activities {
		rows = append(rows, map[string]string{
			"Title":     activity.Title,
			"Type":      activity.WorkType,
			"Due":       activity.DueDateLabel,
			"Status":    activity.Status.Label,
			"Submitted": activity.SubmittedAt,
			"Grade":     activity.Grade,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func courseLine(name, section string) string {
	if section == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, section)
}
