package dto

import "github.com/noah-isme/classroom-report-api/internal/models"

// Activity is one coursework row in a report, statused for the target
// student.
type Activity struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	WorkType     string                  `json:"work_type,omitempty"`
	Link         string                  `json:"link,omitempty"`
	DueDate      string                  `json:"due_date,omitempty"`
	DueDateLabel string                  `json:"due_date_label,omitempty"`
	SubmittedAt  string                  `json:"submitted_at,omitempty"`
	Status       models.StatusDescriptor `json:"status"`
	Grade        string                  `json:"grade,omitempty"`
}

// ReportFilters echoes the date window a report was built with.
type ReportFilters struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// StudentSummaryReport is the per-student activity summary view.
type StudentSummaryReport struct {
	Course     models.Course        `json:"course"`
	Student    models.Student       `json:"student"`
	Filters    ReportFilters        `json:"filters"`
	Summary    models.ReportMetrics `json:"summary"`
	Activities []Activity           `json:"activities"`
}

// MissingWorkReport restricts the summary to activities whose status is
// MISSING.
type MissingWorkReport struct {
	Course       models.Course  `json:"course"`
	Student      models.Student `json:"student"`
	Filters      ReportFilters  `json:"filters"`
	TotalMissing int            `json:"total_missing"`
	Assignments  []Activity     `json:"assignments"`
}
