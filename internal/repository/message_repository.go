package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/learnhub-app/lms-api/internal/models"
)

// MessageRepository handles persistence of the append-only chat log.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository constructs the repository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// ListByCourse returns the full ordered log for a course, ascending by
// timestamp with the insertion sequence breaking ties.
func (r *MessageRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Message, error) {
	const query = `SELECT id, course_id, sender_id, sender_name, sender_role, message, timestamp, seq FROM messages WHERE course_id = $1 ORDER BY timestamp ASC, seq ASC`
	var messages []models.Message
	if err := r.db.SelectContext(ctx, &messages, query, courseID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// Create appends a message. There is no update or delete path.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	const query = `INSERT INTO messages (id, course_id, sender_id, sender_name, sender_role, message, timestamp)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING seq`
	if err := r.db.GetContext(ctx, &message.Seq, query,
		message.ID, message.CourseID, message.SenderID, message.SenderName, message.SenderRole, message.Body, message.Timestamp); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}
