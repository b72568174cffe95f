package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report-api/internal/models"
	appErrors "github.com/noah-isme/classroom-report-api/pkg/errors"
)

type courseAccessor interface {
	ListActiveCourses(ctx context.Context) ([]models.Course, error)
	GetRoster(ctx context.Context, courseID string) (*models.Roster, error)
}

// CourseService exposes the course picker and roster operations to the
// presentation layer.
type CourseService struct {
	accessor courseAccessor
	logger   *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(accessor courseAccessor, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{accessor: accessor, logger: logger}
}

// ListActiveCourses returns the caller's active courses sorted by name.
func (s *CourseService) ListActiveCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.accessor.ListActiveCourses(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("active courses listed", zap.Int("count", len(courses)))
	return courses, nil
}

// GetRoster returns one course with its students in upstream order.
func (s *CourseService) GetRoster(ctx context.Context, courseID string) (*models.Roster, error) {
	if courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}
	roster, err := s.accessor.GetRoster(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return roster, nil
}
