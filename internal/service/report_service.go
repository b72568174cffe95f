package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report-api/internal/dto"
	"github.com/noah-isme/classroom-report-api/internal/models"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
)

type reportAccessor interface {
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	GetStudent(ctx context.Context, courseID, userID string) (*models.Student, error)
	ListCoursework(ctx context.Context, courseID string, start, end *models.Date) ([]models.CourseworkItem, error)
	ListSubmissions(ctx context.Context, courseID string, courseworkIDs []string) ([]models.Submission, error)
}

// ReportRequest carries the parameters of one report build. Both dates are
// optional and inclusive.
type ReportRequest struct {
	CourseID  string `validate:"required"`
	UserID    string `validate:"required"`
	StartDate *models.Date
	EndDate   *models.Date
}

// ReportService assembles the two report views. All data is fetched fresh
// per call and discarded with the response.
type ReportService struct {
	accessor  reportAccessor
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs ReportService.
func NewReportService(accessor reportAccessor, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		accessor:  accessor,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildStudentSummary composes the per-student activity summary: course,
// student, date-windowed coursework, the student's submissions, per-item
// statuses, and the aggregate counters.
func (s *ReportService) BuildStudentSummary(ctx context.Context, req ReportRequest) (*dto.StudentSummaryReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "courseId and userId are required")
	}

	course, err := s.accessor.GetCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	student, err := s.accessor.GetStudent(ctx, req.CourseID, req.UserID)
	if err != nil {
		return nil, err
	}
	items, err := s.accessor.ListCoursework(ctx, req.CourseID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	submissions, err := s.accessor.ListSubmissions(ctx, req.CourseID, ids)
	if err != nil {
		return nil, err
	}

	// Only the target student's submissions matter. Upstream should return
	// at most one per coursework id; if it returns more, the last one wins.
	byWork := make(map[string]*models.Submission, len(items))
	for i := range submissions {
		if submissions[i].UserID != student.UserID {
			continue
		}
		byWork[submissions[i].CourseWorkID] = &submissions[i]
	}

	effectiveEnd := s.now()
	if req.EndDate != nil {
		effectiveEnd = req.EndDate.UTCEnd()
	}

	metrics := models.ReportMetrics{TotalAssigned: len(items)}
	activities := make([]dto.Activity, 0, len(items))
	for _, item := range items {
		submission := byWork[item.ID]
		status := DeriveStatus(item, submission, effectiveEnd)
		AccumulateStatus(&metrics, status, submission)
		activities = append(activities, buildActivity(item, submission, status))
	}

	s.logger.Debug("student summary built",
		zap.String("course_id", req.CourseID),
		zap.String("user_id", req.UserID),
		zap.Int("total_assigned", metrics.TotalAssigned),
		zap.Int("missing", metrics.Missing),
	)

	return &dto.StudentSummaryReport{
		Course:     *course,
		Student:    *student,
		Filters:    buildFilters(req),
		Summary:    metrics,
		Activities: activities,
	}, nil
}

// BuildMissingWorkReport derives the missing-work view from the summary. The
// date window only controls which coursework is considered; whether an item
// is missing is judged against the effective end instant alone.
func (s *ReportService) BuildMissingWorkReport(ctx context.Context, req ReportRequest) (*dto.MissingWorkReport, error) {
	summary, err := s.BuildStudentSummary(ctx, req)
	if err != nil {
		return nil, err
	}

	missing := make([]dto.Activity, 0)
	for _, activity := range summary.Activities {
		if activity.Status.Code == models.StatusMissing {
			missing = append(missing, activity)
		}
	}

	return &dto.MissingWorkReport{
		Course:       summary.Course,
		Student:      summary.Student,
		Filters:      summary.Filters,
		TotalMissing: len(missing),
		Assignments:  missing,
	}, nil
}

func buildActivity(item models.CourseworkItem, submission *models.Submission, status models.StatusDescriptor) dto.Activity {
	activity := dto.Activity{
		ID:       item.ID,
		Title:    item.Title,
		WorkType: item.WorkType,
		Link:     item.AlternateLink,
		Status:   status,
	}
	if item.DueDate != nil {
		activity.DueDate = item.DueDate.ISO()
		activity.DueDateLabel = item.DueDate.Display()
	}
	if submission != nil && !submission.UpdateTime.IsZero() {
		activity.SubmittedAt = submission.UpdateTime.UTC().Format("Jan 2, 2006")
	}
	activity.Grade = gradeLabel(submission)
	return activity
}

// gradeLabel renders the grade column: the assigned grade when present, the
// draft grade marked as such otherwise, empty when neither exists.
func gradeLabel(submission *models.Submission) string {
	if submission == nil {
		return ""
	}
	if submission.AssignedGrade != nil {
		return formatGrade(*submission.AssignedGrade)
	}
	if submission.DraftGrade != nil {
		return formatGrade(*submission.DraftGrade) + " (draft)"
	}
	return ""
}

func formatGrade(grade float64) string {
	return strconv.FormatFloat(grade, 'f', -1, 64)
}

func buildFilters(req ReportRequest) dto.ReportFilters {
	filters := dto.ReportFilters{}
	if req.StartDate != nil {
		filters.StartDate = req.StartDate.ISO()
	}
	if req.EndDate != nil {
		filters.EndDate = req.EndDate.ISO()
	}
	return filters
}
