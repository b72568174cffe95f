package repository

import (
	"context"
	"sort"

	"github.com/noah-isme/classroom-report-api/internal/classroom"
	"github.com/noah-isme/classroom-report-api/internal/models"
)

// classroomClient is the slice of the API client the accessor consumes.
type classroomClient interface {
	ListCoursesPage(ctx context.Context, pageToken string) (*classroom.CoursePage, error)
	GetCourse(ctx context.Context, courseID string) (*classroom.Course, error)
	ListStudentsPage(ctx context.Context, courseID, pageToken string) (*classroom.StudentPage, error)
	GetStudent(ctx context.Context, courseID, userID string) (*classroom.Student, error)
	ListCourseWorkPage(ctx context.Context, courseID, pageToken string) (*classroom.CourseWorkPage, error)
	ListSubmissionsPage(ctx context.Context, courseID, courseWorkID, pageToken string) (*classroom.SubmissionPage, error)
}

// ClassroomRepository wraps the external classroom API with pagination,
// projection, and date-window filtering. It holds no state beyond the client
// and fetches fresh data on every call. Any upstream failure aborts the whole
// call; there is no retry and no partial result.
type ClassroomRepository struct {
	client classroomClient
}

// NewClassroomRepository constructs the accessor.
func NewClassroomRepository(client classroomClient) *ClassroomRepository {
	return &ClassroomRepository{client: client}
}

// ListActiveCourses returns all ACTIVE courses taught by the caller, sorted
// by name ascending. Pagination is exhausted internally.
func (r *ClassroomRepository) ListActiveCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := classroom.Pages(ctx, func(ctx context.Context, token string) (string, error) {
		page, err := r.client.ListCoursesPage(ctx, token)
		if err != nil {
			return "", err
		}
		for _, c := range page.Courses {
			if c.CourseState != "" && c.CourseState != "ACTIVE" {
				continue
			}
			courses = append(courses, c.ToModel())
		}
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Name < courses[j].Name
	})
	return courses, nil
}

// GetCourse fetches one course snapshot.
func (r *ClassroomRepository) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	raw, err := r.client.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course := raw.ToModel()
	return &course, nil
}

// GetRoster returns the course plus its students in upstream page order.
func (r *ClassroomRepository) GetRoster(ctx context.Context, courseID string) (*models.Roster, error) {
	course, err := r.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var students []models.Student
	err = classroom.Pages(ctx, func(ctx context.Context, token string) (string, error) {
		page, err := r.client.ListStudentsPage(ctx, courseID, token)
		if err != nil {
			return "", err
		}
		for _, s := range page.Students {
			students = append(students, s.ToModel())
		}
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}

	return &models.Roster{Course: *course, Students: students}, nil
}

// GetStudent fetches a single student membership record.
func (r *ClassroomRepository) GetStudent(ctx context.Context, courseID, userID string) (*models.Student, error) {
	raw, err := r.client.GetStudent(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	student := raw.ToModel()
	return &student, nil
}

// ListCoursework returns the course's published coursework in upstream order
// (due date / update time descending), restricted to the optional inclusive
// date window. An item's timestamp for filtering is its due instant when a
// due date is present, its update time otherwise.
func (r *ClassroomRepository) ListCoursework(ctx context.Context, courseID string, start, end *models.Date) ([]models.CourseworkItem, error) {
	var items []models.CourseworkItem
	err := classroom.Pages(ctx, func(ctx context.Context, token string) (string, error) {
		page, err := r.client.ListCourseWorkPage(ctx, courseID, token)
		if err != nil {
			return "", err
		}
		for _, w := range page.CourseWork {
			item := w.ToModel()
			if inWindow(item, start, end) {
				items = append(items, item)
			}
		}
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListSubmissions returns all submissions for each coursework id,
// concatenated in input-id order, with pagination exhausted per id.
func (r *ClassroomRepository) ListSubmissions(ctx context.Context, courseID string, courseworkIDs []string) ([]models.Submission, error) {
	var submissions []models.Submission
	for _, workID := range courseworkIDs {
		err := classroom.Pages(ctx, func(ctx context.Context, token string) (string, error) {
			page, err := r.client.ListSubmissionsPage(ctx, courseID, workID, token)
			if err != nil {
				return "", err
			}
			for _, s := range page.StudentSubmissions {
				submissions = append(submissions, s.ToModel())
			}
			return page.NextPageToken, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return submissions, nil
}

func inWindow(item models.CourseworkItem, start, end *models.Date) bool {
	if start == nil && end == nil {
		return true
	}
	ts := item.EffectiveTimestamp()
	if start != nil && ts.Before(start.UTCStart()) {
		return false
	}
	if end != nil && ts.After(end.UTCEnd()) {
		return false
	}
	return true
}
