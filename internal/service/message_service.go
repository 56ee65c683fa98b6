package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/learnhub-app/lms-api/internal/models"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
)

type messageRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Message, error)
	Create(ctx context.Context, message *models.Message) error
}

// PostMessageRequest carries the chat message body. Sender identity comes
// from the authenticated actor, never from the payload.
type PostMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// MessageService implements the per-course chat feed. Clients poll the list
// endpoint; the feed is cached briefly and invalidated on every post.
type MessageService struct {
	messages  messageRepository
	courses   courseFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMessageService constructs MessageService. cache may be nil.
func NewMessageService(messages messageRepository, courses courseFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *MessageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{messages: messages, courses: courses, cache: cache, validator: validate, logger: logger}
}

func chatCacheKey(courseID string) string {
	return fmt.Sprintf("chat:course:%s", courseID)
}

func (s *MessageService) courseExists(ctx context.Context, courseID string) error {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return nil
}

// Post appends a message to the course feed. Sender name and role are
// snapshotted from the actor at post time.
func (s *MessageService) Post(ctx context.Context, actor *models.User, courseID string, req PostMessageRequest) (*models.Message, error) {
	if err := s.courseExists(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}

	message := &models.Message{
		CourseID:   courseID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		SenderRole: actor.Role,
		Body:       req.Message,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to post message")
	}

	if err := s.cache.Invalidate(ctx, chatCacheKey(courseID)); err != nil {
		s.logger.Warn("chat cache invalidation failed", zap.String("course_id", courseID), zap.Error(err))
	}
	return message, nil
}

// List returns the full feed for a course in ascending time order, with the
// insertion sequence breaking timestamp ties.
func (s *MessageService) List(ctx context.Context, courseID string) ([]models.Message, error) {
	if err := s.courseExists(ctx, courseID); err != nil {
		return nil, err
	}

	key := chatCacheKey(courseID)
	var cached []models.Message
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	messages, err := s.messages.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list messages")
	}
	if messages == nil {
		messages = []models.Message{}
	}

	if err := s.cache.Set(ctx, key, messages, 0); err != nil {
		s.logger.Warn("chat cache write failed", zap.String("course_id", courseID), zap.Error(err))
	}
	return messages, nil
}
