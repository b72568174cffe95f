package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-report-api/internal/classroom"
	"github.com/noah-isme/classroom-report-api/internal/models"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
)

type fakeClient struct {
	coursePages      []*classroom.CoursePage
	courseCalls      int
	courseTokensSeen []string
	course           *classroom.Course
	courseErr        error
	studentPages     []*classroom.StudentPage
	studentCalls     int
	student          *classroom.Student
	studentErr       error
	workPages        []*classroom.CourseWorkPage
	workCalls        int
	workErr          error
	subPagesByWork   map[string][]*classroom.SubmissionPage
	subCallsByWork   map[string]int
	subRequested     []string
	subErr           error
}

func (f *fakeClient) ListCoursesPage(_ context.Context, token string) (*classroom.CoursePage, error) {
	f.courseTokensSeen = append(f.courseTokensSeen, token)
	page := f.coursePages[f.courseCalls]
	f.courseCalls++
	return page, nil
}

func (f *fakeClient) GetCourse(context.Context, string) (*classroom.Course, error) {
	return f.course, f.courseErr
}

func (f *fakeClient) ListStudentsPage(_ context.Context, _, _ string) (*classroom.StudentPage, error) {
	page := f.studentPages[f.studentCalls]
	f.studentCalls++
	return page, nil
}

func (f *fakeClient) GetStudent(context.Context, string, string) (*classroom.Student, error) {
	return f.student, f.studentErr
}

func (f *fakeClient) ListCourseWorkPage(_ context.Context, _, _ string) (*classroom.CourseWorkPage, error) {
	if f.workErr != nil {
		return nil, f.workErr
	}
	page := f.workPages[f.workCalls]
	f.workCalls++
	return page, nil
}

func (f *fakeClient) ListSubmissionsPage(_ context.Context, _, courseWorkID, _ string) (*classroom.SubmissionPage, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	if f.subCallsByWork == nil {
		f.subCallsByWork = map[string]int{}
	}
	if f.subCallsByWork[courseWorkID] == 0 {
		f.subRequested = append(f.subRequested, courseWorkID)
	}
	page := f.subPagesByWork[courseWorkID][f.subCallsByWork[courseWorkID]]
	f.subCallsByWork[courseWorkID]++
	return page, nil
}

func TestListActiveCoursesExhaustsPagesAndSorts(t *testing.T) {
	client := &fakeClient{
		coursePages: []*classroom.CoursePage{
			{
				Courses: []classroom.Course{
					{ID: "c2", Name: "Biology", CourseState: "ACTIVE"},
					{ID: "c3", Name: "archived", CourseState: "ARCHIVED"},
				},
				NextPageToken: "page-2",
			},
			{
				Courses: []classroom.Course{
					{ID: "c1", Name: "Algebra", CourseState: "ACTIVE"},
				},
			},
		},
	}
	repo := NewClassroomRepository(client)

	courses, err := repo.ListActiveCourses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "page-2"}, client.courseTokensSeen)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algebra", courses[0].Name)
	assert.Equal(t, "Biology", courses[1].Name)
}

func TestGetRosterPreservesUpstreamOrder(t *testing.T) {
	client := &fakeClient{
		course: &classroom.Course{ID: "c1", Name: "Algebra", Section: "P3"},
		studentPages: []*classroom.StudentPage{
			{
				Students: []classroom.Student{
					{UserID: "z-1", Profile: classroom.Profile{Name: classroom.Name{FullName: "Zoe"}}},
				},
				NextPageToken: "next",
			},
			{
				Students: []classroom.Student{
					{UserID: "a-1", Profile: classroom.Profile{Name: classroom.Name{FullName: "Ada"}, EmailAddress: "ada@school.test"}},
				},
			},
		},
	}
	repo := NewClassroomRepository(client)

	roster, err := repo.GetRoster(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "Algebra", roster.Course.Name)
	require.Len(t, roster.Students, 2)
	assert.Equal(t, "Zoe", roster.Students[0].Name)
	assert.Equal(t, "Ada", roster.Students[1].Name)
	assert.Equal(t, "ada@school.test", roster.Students[1].Email)
}

func TestGetStudentMapsNotFound(t *testing.T) {
	client := &fakeClient{studentErr: appErrors.Clone(appErrors.ErrNotFound, "classroom resource not found")}
	repo := NewClassroomRepository(client)

	_, err := repo.GetStudent(context.Background(), "c1", "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func workPage(items ...classroom.CourseWork) *classroom.CourseWorkPage {
	return &classroom.CourseWorkPage{CourseWork: items}
}

func TestListCourseworkNoWindowReturnsAll(t *testing.T) {
	client := &fakeClient{workPages: []*classroom.CourseWorkPage{workPage(
		classroom.CourseWork{ID: "cw-1", Title: "A"},
		classroom.CourseWork{ID: "cw-2", Title: "B", DueDate: &classroom.DueDate{Year: 2020, Month: 1, Day: 1}},
	)}}
	repo := NewClassroomRepository(client)

	items, err := repo.ListCoursework(context.Background(), "c1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListCourseworkWindowFiltersByDueDate(t *testing.T) {
	client := &fakeClient{workPages: []*classroom.CourseWorkPage{workPage(
		classroom.CourseWork{ID: "in", DueDate: &classroom.DueDate{Year: 2024, Month: 1, Day: 15}},
		classroom.CourseWork{ID: "out", DueDate: &classroom.DueDate{Year: 2024, Month: 2, Day: 1}},
	)}}
	repo := NewClassroomRepository(client)

	start := &models.Date{Year: 2024, Month: 1, Day: 1}
	end := &models.Date{Year: 2024, Month: 1, Day: 31}
	items, err := repo.ListCoursework(context.Background(), "c1", start, end)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "in", items[0].ID)
}

func TestListCourseworkWindowEndOfDayInclusive(t *testing.T) {
	// Due at 23:59:59 on the window's last day is still inside.
	client := &fakeClient{workPages: []*classroom.CourseWorkPage{workPage(
		classroom.CourseWork{
			ID:      "edge",
			DueDate: &classroom.DueDate{Year: 2024, Month: 1, Day: 31},
			DueTime: &classroom.DueTime{Hours: 23, Minutes: 59, Seconds: 59},
		},
	)}}
	repo := NewClassroomRepository(client)

	end := &models.Date{Year: 2024, Month: 1, Day: 31}
	items, err := repo.ListCoursework(context.Background(), "c1", nil, end)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListCourseworkFallsBackToUpdateTime(t *testing.T) {
	client := &fakeClient{workPages: []*classroom.CourseWorkPage{workPage(
		classroom.CourseWork{ID: "updated-in", UpdateTime: "2024-01-10T08:00:00Z"},
		classroom.CourseWork{ID: "updated-out", UpdateTime: "2023-12-01T08:00:00Z"},
	)}}
	repo := NewClassroomRepository(client)

	start := &models.Date{Year: 2024, Month: 1, Day: 1}
	items, err := repo.ListCoursework(context.Background(), "c1", start, nil)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "updated-in", items[0].ID)
}

func TestListCourseworkUpstreamFailureAborts(t *testing.T) {
	client := &fakeClient{workErr: appErrors.Clone(appErrors.ErrUpstream, "classroom API returned 503")}
	repo := NewClassroomRepository(client)

	items, err := repo.ListCoursework(context.Background(), "c1", nil, nil)
	require.Error(t, err)
	assert.Nil(t, items)
}

func TestListSubmissionsConcatenatesInInputOrder(t *testing.T) {
	client := &fakeClient{
		subPagesByWork: map[string][]*classroom.SubmissionPage{
			"cw-2": {
				{StudentSubmissions: []classroom.StudentSubmission{{ID: "s2a", CourseWorkID: "cw-2"}}, NextPageToken: "more"},
				{StudentSubmissions: []classroom.StudentSubmission{{ID: "s2b", CourseWorkID: "cw-2"}}},
			},
			"cw-1": {
				{StudentSubmissions: []classroom.StudentSubmission{{ID: "s1a", CourseWorkID: "cw-1"}}},
			},
		},
	}
	repo := NewClassroomRepository(client)

	subs, err := repo.ListSubmissions(context.Background(), "c1", []string{"cw-2", "cw-1"})
	require.NoError(t, err)

	require.Len(t, subs, 3)
	assert.Equal(t, "s2a", subs[0].ID)
	assert.Equal(t, "s2b", subs[1].ID)
	assert.Equal(t, "s1a", subs[2].ID)
	assert.Equal(t, []string{"cw-2", "cw-1"}, client.subRequested)
}

func TestListSubmissionsFailureAbortsWholeCall(t *testing.T) {
	client := &fakeClient{subErr: appErrors.Clone(appErrors.ErrUpstream, "quota exceeded")}
	repo := NewClassroomRepository(client)

	subs, err := repo.ListSubmissions(context.Background(), "c1", []string{"cw-1", "cw-2"})
	require.Error(t, err)
	assert.Nil(t, subs)
}

func TestListCourseworkParsesDueTimeDefaults(t *testing.T) {
	// Only the date is known: the timestamp defaults to midnight UTC, so a
	// start bound at the same day includes it.
	client := &fakeClient{workPages: []*classroom.CourseWorkPage{workPage(
		classroom.CourseWork{ID: "midnight", DueDate: &classroom.DueDate{Year: 2024, Month: 3, Day: 1}},
	)}}
	repo := NewClassroomRepository(client)

	start := &models.Date{Year: 2024, Month: 3, Day: 1}
	items, err := repo.ListCoursework(context.Background(), "c1", start, nil)
	require.NoError(t, err)

	require.Len(t, items, 1)
	due, ok := items[0].DueInstant()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), due)
}
