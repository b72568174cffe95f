package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-report-api/internal/service"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
	"github.com/noah-isme/classroom-report-api/web"
)

// UIHandler serves the server-rendered report pages. It is a thin
// pass-through over the same services the JSON API uses; a failed report
// request renders an error page rather than an empty report.
type UIHandler struct {
	courses courseService
	reports reportService
}

// NewUIHandler constructs the handler.
func NewUIHandler(courses courseService, reports reportService) *UIHandler {
	return &UIHandler{courses: courses, reports: reports}
}

// LoadTemplates parses the embedded views into the router.
func LoadTemplates(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.tmpl")))
}

// Courses renders the course picker.
func (h *UIHandler) Courses(c *gin.Context) {
	courses, err := h.courses.ListActiveCourses(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "courses.tmpl", gin.H{"Courses": courses})
}

// Roster renders the student picker for one course.
func (h *UIHandler) Roster(c *gin.Context) {
	roster, err := h.courses.GetRoster(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "roster.tmpl", gin.H{"Roster": roster})
}

// Summary renders the per-student activity summary page.
func (h *UIHandler) Summary(c *gin.Context) {
	req, err := uiReportRequest(c)
	if err != nil {
		h.renderError(c, err)
		return
	}
	report, err := h.reports.BuildStudentSummary(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "summary.tmpl", gin.H{"Report": report})
}

// MissingWork renders the missing-work page.
func (h *UIHandler) MissingWork(c *gin.Context) {
	req, err := uiReportRequest(c)
	if err != nil {
		h.renderError(c, err)
		return
	}
	report, err := h.reports.BuildMissingWorkReport(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "missing.tmpl", gin.H{"Report": report})
}

func uiReportRequest(c *gin.Context) (service.ReportRequest, error) {
	req := service.ReportRequest{
		CourseID: strings.TrimSpace(c.Param("id")),
		UserID:   strings.TrimSpace(c.Param("userId")),
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

func (h *UIHandler) renderError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.HTML(appErr.Status, "error.tmpl", gin.H{"Error": appErr})
}
