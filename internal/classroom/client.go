package classroom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/noah-isme/classroom-report-api/pkg/config"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
)

// Field projections requested from upstream. Trimming responses keeps report
// latency down on large courses.
const (
	courseFields     = "id,name,section,courseState,alternateLink"
	courseListFields = "courses(id,name,section,courseState,alternateLink),nextPageToken"
	studentFields    = "courseId,userId,profile(id,name(fullName),emailAddress,photoUrl)"
	rosterFields     = "students(courseId,userId,profile(id,name(fullName),emailAddress,photoUrl)),nextPageToken"
	workListFields   = "courseWork(id,title,workType,dueDate,dueTime,creationTime,updateTime,alternateLink),nextPageToken"
	subListFields    = "studentSubmissions(id,courseWorkId,userId,state,late,updateTime,assignedGrade,draftGrade),nextPageToken"
)

const defaultPageSize = 100

// CallObserver receives timing for each upstream call, keyed by resource.
type CallObserver interface {
	ObserveUpstreamCall(resource string, err error, duration time.Duration)
}

// Client talks to the external classroom API. It is stateless apart from the
// shared HTTP transport and safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	pageSize int
	observer CallObserver
}

// WithObserver attaches an observer for upstream call metrics and returns the
// client for chaining.
func (c *Client) WithObserver(observer CallObserver) *Client {
	c.observer = observer
	return c
}

// New builds a Client from configuration. When an access token is configured
// it is attached to every request through an oauth2 transport.
func New(cfg config.ClassroomConfig) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.AccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		httpClient.Transport = &oauth2.Transport{Source: src}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		http:     httpClient,
		pageSize: pageSize,
	}
}

// NewWithHTTPClient builds a Client over a caller-supplied transport.
// Used by tests pointing at an httptest server.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, pageSize int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{baseURL: baseURL, http: httpClient, pageSize: pageSize}
}

// ListCoursesPage fetches one page of active courses taught by the caller.
func (c *Client) ListCoursesPage(ctx context.Context, pageToken string) (*CoursePage, error) {
	q := url.Values{}
	q.Set("teacherId", "me")
	q.Set("courseStates", "ACTIVE")
	q.Set("fields", courseListFields)
	c.page(q, pageToken)

	page := &CoursePage{}
	if err := c.get(ctx, "courses", "/courses", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetCourse fetches a single course.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	q := url.Values{}
	q.Set("fields", courseFields)

	course := &Course{}
	if err := c.get(ctx, "courses", "/courses/"+url.PathEscape(courseID), q, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListStudentsPage fetches one roster page in upstream order.
func (c *Client) ListStudentsPage(ctx context.Context, courseID, pageToken string) (*StudentPage, error) {
	q := url.Values{}
	q.Set("fields", rosterFields)
	c.page(q, pageToken)

	page := &StudentPage{}
	if err := c.get(ctx, "students", "/courses/"+url.PathEscape(courseID)+"/students", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetStudent fetches a single course membership record.
func (c *Client) GetStudent(ctx context.Context, courseID, userID string) (*Student, error) {
	q := url.Values{}
	q.Set("fields", studentFields)

	student := &Student{}
	path := "/courses/" + url.PathEscape(courseID) + "/students/" + url.PathEscape(userID)
	if err := c.get(ctx, "students", path, q, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ListCourseWorkPage fetches one page of published coursework, newest due
// first.
func (c *Client) ListCourseWorkPage(ctx context.Context, courseID, pageToken string) (*CourseWorkPage, error) {
	q := url.Values{}
	q.Set("courseWorkStates", "PUBLISHED")
	q.Set("orderBy", "dueDate desc")
	q.Set("fields", workListFields)
	c.page(q, pageToken)

	page := &CourseWorkPage{}
	if err := c.get(ctx, "courseWork", "/courses/"+url.PathEscape(courseID)+"/courseWork", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ListSubmissionsPage fetches one page of submissions for one coursework
// item.
func (c *Client) ListSubmissionsPage(ctx context.Context, courseID, courseWorkID, pageToken string) (*SubmissionPage, error) {
	q := url.Values{}
	q.Set("fields", subListFields)
	c.page(q, pageToken)

	page := &SubmissionPage{}
	path := "/courses/" + url.PathEscape(courseID) + "/courseWork/" + url.PathEscape(courseWorkID) + "/studentSubmissions"
	if err := c.get(ctx, "studentSubmissions", path, q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) page(q url.Values, pageToken string) {
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values, out interface{}) (err error) {
	if c.observer != nil {
		start := time.Now()
		defer func() {
			c.observer.ObserveUpstreamCall(resource, err, time.Since(start))
		}()
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build classroom request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "classroom API unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, "classroom resource not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("classroom API returned %d: %s", resp.StatusCode, string(body))
		return appErrors.Wrap(fmt.Errorf("status %d", resp.StatusCode), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode classroom response")
	}
	return nil
}

// Pages invokes fetch with successive continuation tokens until none is
// returned. fetch reports the next token; an error aborts the loop.
func Pages(ctx context.Context, fetch func(ctx context.Context, pageToken string) (string, error)) error {
	token := ""
	for {
		next, err := fetch(ctx, token)
		if err != nil {
			return err
		}
		if next == "" {
			return nil
		}
		token = next
	}
}
