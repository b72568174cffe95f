package classroom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, srv.Client(), 2)
}

func TestListCoursesPageSendsProjectionAndPaging(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(CoursePage{
			Courses:       []Course{{ID: "c1", Name: "Algebra", CourseState: "ACTIVE"}},
			NextPageToken: "token-2",
		})
	})

	page, err := client.ListCoursesPage(context.Background(), "token-1")
	require.NoError(t, err)

	assert.Equal(t, "me", gotQuery["teacherId"][0])
	assert.Equal(t, "ACTIVE", gotQuery["courseStates"][0])
	assert.Equal(t, "2", gotQuery["pageSize"][0])
	assert.Equal(t, "token-1", gotQuery["pageToken"][0])
	assert.Equal(t, courseListFields, gotQuery["fields"][0])
	require.Len(t, page.Courses, 1)
	assert.Equal(t, "token-2", page.NextPageToken)
}

func TestGetStudentMapsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404}}`, http.StatusNotFound)
	})

	_, err := client.GetStudent(context.Background(), "c1", "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetMapsServerErrorToUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusServiceUnavailable)
	})

	_, err := client.ListCourseWorkPage(context.Background(), "c1", "")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "503")
}

func TestGetMapsBadJSONToUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.GetCourse(context.Background(), "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestListSubmissionsPageDecodesGrades(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/c1/courseWork/cw-1/studentSubmissions", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"studentSubmissions": [
				{"id": "s1", "courseWorkId": "cw-1", "userId": "stu-1", "state": "RETURNED", "late": true,
				 "updateTime": "2024-03-02T10:00:00Z", "assignedGrade": 95, "draftGrade": 90}
			]
		}`))
	})

	page, err := client.ListSubmissionsPage(context.Background(), "c1", "cw-1", "")
	require.NoError(t, err)

	require.Len(t, page.StudentSubmissions, 1)
	sub := page.StudentSubmissions[0].ToModel()
	assert.True(t, sub.Late)
	require.NotNil(t, sub.AssignedGrade)
	assert.Equal(t, 95.0, *sub.AssignedGrade)
	require.NotNil(t, sub.DraftGrade)
	assert.Equal(t, 90.0, *sub.DraftGrade)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), sub.UpdateTime)
}

func TestPagesStopsWhenTokenAbsent(t *testing.T) {
	var seen []string
	err := Pages(context.Background(), func(_ context.Context, token string) (string, error) {
		seen = append(seen, token)
		if token == "" {
			return "p2", nil
		}
		if token == "p2" {
			return "p3", nil
		}
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "p2", "p3"}, seen)
}

func TestPagesPropagatesFetchError(t *testing.T) {
	calls := 0
	err := Pages(context.Background(), func(_ context.Context, token string) (string, error) {
		calls++
		if calls == 2 {
			return "", appErrors.Clone(appErrors.ErrUpstream, "boom")
		}
		return "next", nil
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestCourseWorkToModelDueDefaults(t *testing.T) {
	w := CourseWork{
		ID:         "cw-1",
		DueDate:    &DueDate{Year: 2024, Month: 3, Day: 1},
		UpdateTime: "2024-02-20T08:30:00Z",
	}

	item := w.ToModel()
	due, ok := item.DueInstant()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), due)
	assert.Equal(t, time.Date(2024, 2, 20, 8, 30, 0, 0, time.UTC), item.UpdateTime)
}
