package classroom

import (
	"time"

	"github.com/noah-isme/classroom-report-api/internal/models"
)

// Wire shapes mirror the upstream classroom API JSON. They are decoded as-is
// and converted to internal models at the accessor boundary.

// Course is the upstream course resource, projected to the fields the
// reports need.
type Course struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Section       string `json:"section"`
	CourseState   string `json:"courseState"`
	AlternateLink string `json:"alternateLink"`
}

// Name holds the structured student display name.
type Name struct {
	FullName string `json:"fullName"`
}

// Profile is the upstream user profile embedded in a student record.
type Profile struct {
	ID           string `json:"id"`
	Name         Name   `json:"name"`
	EmailAddress string `json:"emailAddress"`
	PhotoURL     string `json:"photoUrl"`
}

// Student is the upstream course membership record.
type Student struct {
	CourseID string  `json:"courseId"`
	UserID   string  `json:"userId"`
	Profile  Profile `json:"profile"`
}

// DueDate is the civil due date attached to course work.
type DueDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DueTime is the UTC time-of-day attached to a due date. Absent components
// are omitted by upstream and default to zero.
type DueTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// CourseWork is the upstream assignment/material resource.
type CourseWork struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	WorkType      string   `json:"workType"`
	DueDate       *DueDate `json:"dueDate"`
	DueTime       *DueTime `json:"dueTime"`
	CreationTime  string   `json:"creationTime"`
	UpdateTime    string   `json:"updateTime"`
	AlternateLink string   `json:"alternateLink"`
}

// StudentSubmission is the upstream submission resource.
type StudentSubmission struct {
	ID            string   `json:"id"`
	CourseWorkID  string   `json:"courseWorkId"`
	UserID        string   `json:"userId"`
	State         string   `json:"state"`
	Late          bool     `json:"late"`
	UpdateTime    string   `json:"updateTime"`
	AssignedGrade *float64 `json:"assignedGrade"`
	DraftGrade    *float64 `json:"draftGrade"`
}

// CoursePage is one page of the course list.
type CoursePage struct {
	Courses       []Course `json:"courses"`
	NextPageToken string   `json:"nextPageToken"`
}

// StudentPage is one page of a course roster.
type StudentPage struct {
	Students      []Student `json:"students"`
	NextPageToken string    `json:"nextPageToken"`
}

// CourseWorkPage is one page of a coursework list.
type CourseWorkPage struct {
	CourseWork    []CourseWork `json:"courseWork"`
	NextPageToken string       `json:"nextPageToken"`
}

// SubmissionPage is one page of a submission list.
type SubmissionPage struct {
	StudentSubmissions []StudentSubmission `json:"studentSubmissions"`
	NextPageToken      string              `json:"nextPageToken"`
}

// ToModel converts a wire course to the internal model.
func (c Course) ToModel() models.Course {
	return models.Course{
		ID:            c.ID,
		Name:          c.Name,
		Section:       c.Section,
		AlternateLink: c.AlternateLink,
	}
}

// ToModel converts a wire student to the internal model.
func (s Student) ToModel() models.Student {
	return models.Student{
		UserID:   s.UserID,
		Name:     s.Profile.Name.FullName,
		Email:    s.Profile.EmailAddress,
		PhotoURL: s.Profile.PhotoURL,
	}
}

// ToModel converts a wire coursework item to the internal model.
func (w CourseWork) ToModel() models.CourseworkItem {
	item := models.CourseworkItem{
		ID:            w.ID,
		Title:         w.Title,
		WorkType:      w.WorkType,
		CreationTime:  parseTime(w.CreationTime),
		UpdateTime:    parseTime(w.UpdateTime),
		AlternateLink: w.AlternateLink,
	}
	if w.DueDate != nil {
		item.DueDate = &models.Date{Year: w.DueDate.Year, Month: w.DueDate.Month, Day: w.DueDate.Day}
	}
	if w.DueTime != nil {
		item.DueTime = &models.TimeOfDay{Hours: w.DueTime.Hours, Minutes: w.DueTime.Minutes, Seconds: w.DueTime.Seconds}
	}
	return item
}

// ToModel converts a wire submission to the internal model.
func (s StudentSubmission) ToModel() models.Submission {
	return models.Submission{
		ID:            s.ID,
		CourseWorkID:  s.CourseWorkID,
		UserID:        s.UserID,
		State:         models.SubmissionState(s.State),
		Late:          s.Late,
		UpdateTime:    parseTime(s.UpdateTime),
		AssignedGrade: s.AssignedGrade,
		DraftGrade:    s.DraftGrade,
	}
}

// parseTime decodes an upstream RFC3339 timestamp, treating malformed or
// empty values as unset.
func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
