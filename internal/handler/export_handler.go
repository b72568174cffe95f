package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-report-api/internal/service"
	"github.com/noah-isme/classroom-report-api/pkg/response"
)

type exportService interface {
	SummaryExport(ctx context.Context, req service.ReportRequest, format string) (*service.ExportArtifact, error)
	MissingWorkExport(ctx context.Context, req service.ReportRequest, format string) (*service.ExportArtifact, error)
}

// ExportHandler streams report downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Summary godoc
// @Summary Download the activity summary as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv or pdf (default csv)"
// @Param courseId query string true "Course ID"
// @Param userId query string true "Student user ID"
// @Param startDate query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {file} binary
// @Router /reports/summary/export [get]
func (h *ExportHandler) Summary(c *gin.Context) {
	h.serve(c, h.service.SummaryExport)
}

// MissingWork godoc
// @Summary Download the missing-work list as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv or pdf (default csv)"
// @Param courseId query string true "Course ID"
// @Param userId query string true "Student user ID"
// @Param startDate query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {file} binary
// @Router /reports/missing/export [get]
func (h *ExportHandler) MissingWork(c *gin.Context) {
	h.serve(c, h.service.MissingWorkExport)
}

func (h *ExportHandler) serve(c *gin.Context, build func(context.Context, service.ReportRequest, string) (*service.ExportArtifact, error)) {
	req, err := parseReportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = service.FormatCSV
	}

	artifact, err := build(c.Request.Context(), req, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}
