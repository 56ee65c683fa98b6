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

// LectureRepository handles persistence of lectures.
type LectureRepository struct {
	db *sqlx.DB
}

// NewLectureRepository constructs the repository.
func NewLectureRepository(db *sqlx.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// FindByID returns a lecture by its ID.
func (r *LectureRepository) FindByID(ctx context.Context, id string) (*models.Lecture, error) {
	const query = `SELECT id, course_id, title, video_url, duration, position, created_at FROM lectures WHERE id = $1 LIMIT 1`
	var lecture models.Lecture
	if err := r.db.GetContext(ctx, &lecture, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lecture by id: %w", err)
	}
	return &lecture, nil
}

// ListByCourse returns the lectures of a course ordered by their
// instructor-supplied position. Duplicate positions fall back to insertion
// order.
func (r *LectureRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Lecture, error) {
	const query = `SELECT id, course_id, title, video_url, duration, position, created_at FROM lectures WHERE course_id = $1 ORDER BY position ASC, created_at ASC`
	var lectures []models.Lecture
	if err := r.db.SelectContext(ctx, &lectures, query, courseID); err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

// Create persists a new lecture record.
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	if lecture.ID == "" {
		lecture.ID = uuid.NewString()
	}
	if lecture.CreatedAt.IsZero() {
		lecture.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO lectures (id, course_id, title, video_url, duration, position, created_at)
        VALUES (:id, :course_id, :title, :video_url, :duration, :position, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lecture); err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}
	return nil
}

// Delete removes a lecture.
func (r *LectureRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM lectures WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete lecture: %w", err)
	}
	return nil
}
