package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/learnhub-app/lms-api/internal/models"
	"github.com/learnhub-app/lms-api/internal/policy"
	"github.com/learnhub-app/lms-api/internal/repository"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
)

type courseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	DeleteCascade(ctx context.Context, id string) error
}

type enrollmentRepository interface {
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

// CreateCourseRequest describes course creation.
type CreateCourseRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// UpdateCourseRequest describes the mutable presentation fields. Ownership
// fields are not part of the payload; re-assigning a course is unsupported.
type UpdateCourseRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// CourseService orchestrates the course lifecycle: creation, updates,
// enrollment and the cascading delete.
type CourseService struct {
	courses     courseRepository
	enrollments enrollmentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(courses courseRepository, enrollments enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, enrollments: enrollments, validator: validate, logger: logger}
}

// Create authors a new course owned by the actor. The actor's display name
// is snapshotted onto the record.
func (s *CourseService) Create(ctx context.Context, actor *models.User, req CreateCourseRequest) (*models.Course, error) {
	if !policy.CanCreateCourse(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only instructors can create courses")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{
		Title:          req.Title,
		Description:    req.Description,
		InstructorID:   actor.ID,
		InstructorName: actor.Name,
		ThumbnailURL:   req.ThumbnailURL,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("instructor_id", actor.ID))
	return course, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Update mutates title, description and thumbnail in place. The existence
// check runs before the ownership check.
func (s *CourseService) Update(ctx context.Context, actor *models.User, id string, req UpdateCourseRequest) (*models.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageCourse(actor.ID, actor.Role, course) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not authorized for this course")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course.Title = req.Title
	course.Description = req.Description
	course.ThumbnailURL = req.ThumbnailURL
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes the course and cascades to its lectures, assignments and
// enrollments in one transaction.
func (s *CourseService) Delete(ctx context.Context, actor *models.User, id string) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanManageCourse(actor.ID, actor.Role, course) {
		return appErrors.Clone(appErrors.ErrForbidden, "not authorized for this course")
	}

	if err := s.courses.DeleteCascade(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}

	s.logger.Info("course deleted", zap.String("course_id", id), zap.String("actor_id", actor.ID))
	return nil
}

// Enroll registers the acting student on a course. A second attempt for the
// same pair is rejected, never merged.
func (s *CourseService) Enroll(ctx context.Context, actor *models.User, courseID string) (*models.Enrollment, error) {
	if !policy.CanEnroll(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can enroll")
	}
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}

	// fast path for a friendlier error; the unique constraint is authoritative
	exists, err := s.enrollments.Exists(ctx, actor.ID, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateEnrollment, "")
	}

	enrollment := &models.Enrollment{StudentID: actor.ID, CourseID: courseID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateEnrollment, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	return enrollment, nil
}

// CheckEnrollment reports whether the actor is enrolled in the course.
func (s *CourseService) CheckEnrollment(ctx context.Context, actor *models.User, courseID string) (bool, error) {
	enrolled, err := s.enrollments.Exists(ctx, actor.ID, courseID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	return enrolled, nil
}

// MyCourses is polymorphic by role: students see courses joined through
// their enrollments, instructors see courses they own, admins see all.
func (s *CourseService) MyCourses(ctx context.Context, actor *models.User) ([]models.Course, error) {
	var (
		courses []models.Course
		err     error
	)
	switch actor.Role {
	case models.RoleStudent:
		var enrollments []models.Enrollment
		enrollments, err = s.enrollments.ListByStudent(ctx, actor.ID)
		if err == nil {
			ids := make([]string, 0, len(enrollments))
			for _, e := range enrollments {
				ids = append(ids, e.CourseID)
			}
			courses, err = s.courses.ListByIDs(ctx, ids)
		}
	case models.RoleInstructor:
		courses, err = s.courses.ListByInstructor(ctx, actor.ID)
	default:
		courses, err = s.courses.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}
