package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/learnhub-app/lms-api/internal/models"
	"github.com/learnhub-app/lms-api/internal/policy"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
)

// courseFinder is the minimal course lookup shared by the services that
// authorize against course ownership.
type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type lectureRepository interface {
	FindByID(ctx context.Context, id string) (*models.Lecture, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Lecture, error)
	Create(ctx context.Context, lecture *models.Lecture) error
	Delete(ctx context.Context, id string) error
}

// CreateLectureRequest describes a new lecture within a course.
type CreateLectureRequest struct {
	Title    string `json:"title" validate:"required"`
	VideoURL string `json:"video_url" validate:"required"`
	Duration int    `json:"duration" validate:"min=0"`
	Position int    `json:"order" validate:"min=0"`
}

// LectureService manages lecture content under a course.
type LectureService struct {
	lectures  lectureRepository
	courses   courseFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLectureService constructs LectureService.
func NewLectureService(lectures lectureRepository, courses courseFinder, validate *validator.Validate, logger *zap.Logger) *LectureService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LectureService{lectures: lectures, courses: courses, validator: validate, logger: logger}
}

func (s *LectureService) authorizeCourse(ctx context.Context, actor *models.User, courseID string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if !policy.CanManageCourse(actor.ID, actor.Role, course) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not authorized for this course")
	}
	return course, nil
}

// Add attaches a lecture to the course. Only the owning instructor or an
// admin may add content.
func (s *LectureService) Add(ctx context.Context, actor *models.User, courseID string, req CreateLectureRequest) (*models.Lecture, error) {
	if _, err := s.authorizeCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecture payload")
	}

	lecture := &models.Lecture{
		CourseID: courseID,
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
		Position: req.Position,
	}
	if err := s.lectures.Create(ctx, lecture); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lecture")
	}
	return lecture, nil
}

// ListByCourse returns a course's lectures in display order.
func (s *LectureService) ListByCourse(ctx context.Context, courseID string) ([]models.Lecture, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	lectures, err := s.lectures.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lectures")
	}
	if lectures == nil {
		lectures = []models.Lecture{}
	}
	return lectures, nil
}

// Delete removes a lecture. Authorization resolves through the parent
// course, so the lecture lookup runs first.
func (s *LectureService) Delete(ctx context.Context, actor *models.User, lectureID string) error {
	lecture, err := s.lectures.FindByID(ctx, lectureID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecture")
	}
	if _, err := s.authorizeCourse(ctx, actor, lecture.CourseID); err != nil {
		return err
	}
	if err := s.lectures.Delete(ctx, lectureID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lecture")
	}
	return nil
}
