package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-report-api/internal/dto"
	"github.com/noah-isme/classroom-report-api/internal/models"
	"github.com/noah-isme/classroom-report-api/internal/service"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
	"github.com/noah-isme/classroom-report-api/pkg/response"
)

type reportService interface {
	BuildStudentSummary(ctx context.Context, req service.ReportRequest) (*dto.StudentSummaryReport, error)
	BuildMissingWorkReport(ctx context.Context, req service.ReportRequest) (*dto.MissingWorkReport, error)
}

type reportObserver interface {
	ObserveReportBuild(view string, err error)
}

// ReportHandler exposes the two report views.
type ReportHandler struct {
	service reportService
	metrics reportObserver
}

// NewReportHandler constructs the handler. metrics may be nil.
func NewReportHandler(service reportService, metrics reportObserver) *ReportHandler {
	return &ReportHandler{service: service, metrics: metrics}
}

// Summary godoc
// @Summary Per-student activity summary
// @Tags Reports
// @Produce json
// @Param courseId query string true "Course ID"
// @Param userId query string true "Student user ID"
// @Param startDate query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} response.Envelope
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.BuildStudentSummary(c.Request.Context(), req)
	if h.metrics != nil {
		h.metrics.ObserveReportBuild("summary", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// MissingWork godoc
// @Summary Missing-work list for one student
// @Tags Reports
// @Produce json
// @Param courseId query string true "Course ID"
// @Param userId query string true "Student user ID"
// @Param startDate query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} response.Envelope
// @Router /reports/missing [get]
func (h *ReportHandler) MissingWork(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.BuildMissingWorkReport(c.Request.Context(), req)
	if h.metrics != nil {
		h.metrics.ObserveReportBuild("missing_work", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// parseReportRequest reads the shared report query parameters. Field
// presence is enforced by the service; only date syntax is checked here.
func parseReportRequest(c *gin.Context) (service.ReportRequest, error) {
	req := service.ReportRequest{
		CourseID: strings.TrimSpace(c.Query("courseId")),
		UserID:   strings.TrimSpace(c.Query("userId")),
	}

	start, err := parseDateParam(c.Query("startDate"), "startDate")
	if err != nil {
		return req, err
	}
	end, err := parseDateParam(c.Query("endDate"), "endDate")
	if err != nil {
		return req, err
	}
	req.StartDate = start
	req.EndDate = end
	return req, nil
}

func parseDateParam(raw, name string) (*models.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a YYYY-MM-DD date", name))
	}
	return &date, nil
}
