package models

import "time"

// SubmissionState enumerates the upstream submission lifecycle states.
type SubmissionState string

const (
	SubmissionNew       SubmissionState = "NEW"
	SubmissionCreated   SubmissionState = "CREATED"
	SubmissionDraft     SubmissionState = "DRAFT"
	SubmissionTurnedIn  SubmissionState = "TURNED_IN"
	SubmissionReturned  SubmissionState = "RETURNED"
	SubmissionReclaimed SubmissionState = "RECLAIMED_BY_STUDENT"
)

// Submission is a student's engagement record for one coursework item. At
// most one submission per (coursework, user) pair is relevant to a report.
type Submission struct {
	ID            string          `json:"id"`
	CourseWorkID  string          `json:"course_work_id"`
	UserID        string          `json:"user_id"`
	State         SubmissionState `json:"state"`
	Late          bool            `json:"late"`
	UpdateTime    time.Time       `json:"update_time"`
	AssignedGrade *float64        `json:"assigned_grade,omitempty"`
	DraftGrade    *float64        `json:"draft_grade,omitempty"`
}
