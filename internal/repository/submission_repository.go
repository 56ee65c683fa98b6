package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/learnhub-app/lms-api/internal/models"
)

// SubmissionRepository handles persistence of submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// FindByPair returns the submission for an (assignment, student) pair.
func (r *SubmissionRepository) FindByPair(ctx context.Context, assignmentID, studentID string) (*models.Submission, error) {
	const query = `SELECT id, assignment_id, student_id, student_name, file_url, submitted_at, grade FROM submissions WHERE assignment_id = $1 AND student_id = $2 LIMIT 1`
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, assignmentID, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find submission by pair: %w", err)
	}
	return &submission, nil
}

// ListByStudent returns all submissions made by a student.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error) {
	const query = `SELECT id, assignment_id, student_id, student_name, file_url, submitted_at, grade FROM submissions WHERE student_id = $1 ORDER BY submitted_at ASC`
	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, studentID); err != nil {
		return nil, fmt.Errorf("list submissions by student: %w", err)
	}
	return submissions, nil
}

// ListByAssignment returns all submissions for an assignment.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]models.Submission, error) {
	const query = `SELECT id, assignment_id, student_id, student_name, file_url, submitted_at, grade FROM submissions WHERE assignment_id = $1 ORDER BY submitted_at ASC`
	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, assignmentID); err != nil {
		return nil, fmt.Errorf("list submissions by assignment: %w", err)
	}
	return submissions, nil
}

// Create persists a new submission. A unique constraint on
// (assignment_id, student_id) rejects concurrent duplicates.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}

	const query = `INSERT INTO submissions (id, assignment_id, student_id, student_name, file_url, submitted_at, grade)
        VALUES (:id, :assignment_id, :student_id, :student_name, :file_url, :submitted_at, :grade)`
	if _, err := r.db.NamedExecContext(ctx, query, submission); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// UpdateFile replaces the submitted file in place, preserving id and grade.
func (r *SubmissionRepository) UpdateFile(ctx context.Context, id, fileURL string, submittedAt time.Time) error {
	const query = `UPDATE submissions SET file_url = $2, submitted_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, fileURL, submittedAt); err != nil {
		return fmt.Errorf("update submission file: %w", err)
	}
	return nil
}
