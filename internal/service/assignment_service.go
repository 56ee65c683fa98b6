package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/learnhub-app/lms-api/internal/models"
	"github.com/learnhub-app/lms-api/internal/policy"
	"github.com/learnhub-app/lms-api/internal/repository"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
)

type assignmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

type submissionRepository interface {
	FindByPair(ctx context.Context, assignmentID, studentID string) (*models.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	UpdateFile(ctx context.Context, id, fileURL string, submittedAt time.Time) error
}

// CreateAssignmentRequest describes a new assignment within a course.
type CreateAssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date"`
	FileURL     string `json:"file_url"`
}

// SubmitRequest carries the file reference for submit and resubmit.
type SubmitRequest struct {
	FileURL string `json:"file_url" validate:"required"`
}

// AssignmentService manages assignments and the per-pair submission
// workflow.
type AssignmentService struct {
	assignments assignmentRepository
	submissions submissionRepository
	courses     courseFinder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(assignments assignmentRepository, submissions submissionRepository, courses courseFinder, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{assignments: assignments, submissions: submissions, courses: courses, validator: validate, logger: logger}
}

func (s *AssignmentService) authorizeCourse(ctx context.Context, actor *models.User, courseID string) (*models.Course, error) {
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

func (s *AssignmentService) findAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment, nil
}

// Create attaches an assignment to the course. Only the owning instructor or
// an admin may add one. DueDate is stored exactly as supplied.
func (s *AssignmentService) Create(ctx context.Context, actor *models.User, courseID string, req CreateAssignmentRequest) (*models.Assignment, error) {
	if _, err := s.authorizeCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		FileURL:     req.FileURL,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Delete removes the assignment record only. Submissions pointing at it are
// left in place.
func (s *AssignmentService) Delete(ctx context.Context, actor *models.User, assignmentID string) error {
	assignment, err := s.findAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}
	if _, err := s.authorizeCourse(ctx, actor, assignment.CourseID); err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}

// ListForCourse returns a course's assignments. Students get each entry
// annotated with their own submission state; other students' submissions
// never influence the annotation. Instructors and admins get a plain list.
func (s *AssignmentService) ListForCourse(ctx context.Context, actor *models.User, courseID string) ([]models.StudentAssignment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	byAssignment := map[string]*models.Submission{}
	if actor.Role == models.RoleStudent {
		submissions, err := s.submissions.ListByStudent(ctx, actor.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
		}
		for i := range submissions {
			byAssignment[submissions[i].AssignmentID] = &submissions[i]
		}
	}

	result := make([]models.StudentAssignment, 0, len(assignments))
	for _, a := range assignments {
		entry := models.StudentAssignment{Assignment: a}
		if actor.Role == models.RoleStudent {
			submitted := false
			if sub, ok := byAssignment[a.ID]; ok {
				submitted = true
				entry.SubmissionURL = &sub.FileURL
				if sub.Grade != "" {
					grade := sub.Grade
					entry.Grade = &grade
				}
			}
			entry.IsSubmitted = &submitted
		}
		result = append(result, entry)
	}
	return result, nil
}

// Submit creates the submission for an (assignment, student) pair. A pair
// that already has one is rejected; the update path handles resubmission.
func (s *AssignmentService) Submit(ctx context.Context, actor *models.User, assignmentID string, req SubmitRequest) (*models.Submission, error) {
	if !policy.CanSubmit(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can submit")
	}
	if _, err := s.findAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	if _, err := s.submissions.FindByPair(ctx, assignmentID, actor.ID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateSubmission, "")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check submission")
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    actor.ID,
		StudentName:  actor.Name,
		FileURL:      req.FileURL,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateSubmission, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create submission")
	}
	return submission, nil
}

// UpdateSubmission resubmits in place: file_url and submitted_at change,
// the submission id and grade survive.
func (s *AssignmentService) UpdateSubmission(ctx context.Context, actor *models.User, assignmentID string, req SubmitRequest) (*models.Submission, error) {
	if !policy.CanSubmit(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can submit")
	}
	if _, err := s.findAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	submission, err := s.submissions.FindByPair(ctx, assignmentID, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no submission to update")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}

	submission.FileURL = req.FileURL
	submission.SubmittedAt = time.Now().UTC()
	if err := s.submissions.UpdateFile(ctx, submission.ID, submission.FileURL, submission.SubmittedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update submission")
	}
	return submission, nil
}

// ListSubmittedIDs returns the ids of assignments the acting student has
// submitted, for client-side checklist state.
func (s *AssignmentService) ListSubmittedIDs(ctx context.Context, actor *models.User) ([]string, error) {
	if !policy.CanSubmit(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students have submissions")
	}
	submissions, err := s.submissions.ListByStudent(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	ids := make([]string, 0, len(submissions))
	for _, sub := range submissions {
		ids = append(ids, sub.AssignmentID)
	}
	return ids, nil
}

// SubmissionsByAssignment is the instructor-side grading view. Access
// resolves through the assignment's course ownership.
func (s *AssignmentService) SubmissionsByAssignment(ctx context.Context, actor *models.User, assignmentID string) ([]models.Submission, error) {
	assignment, err := s.findAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeCourse(ctx, actor, assignment.CourseID); err != nil {
		return nil, err
	}
	submissions, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}
