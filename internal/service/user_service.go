package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/learnhub-app/lms-api/internal/models"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
)

type adminUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	DeleteCascade(ctx context.Context, id string) error
}

// UserService exposes the admin-facing user operations. Route-level RBAC
// guards admin access; the service assumes the actor is already vetted.
type UserService struct {
	users   adminUserRepository
	metrics *MetricsService
	logger  *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(users adminUserRepository, metrics *MetricsService, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, metrics: metrics, logger: logger}
}

// List returns every user without credential material.
func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	result := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result, nil
}

// Delete removes a user and, in the same transaction, the courses they own
// with all dependents plus the user's own enrollments.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	start := time.Now()
	if err := s.users.DeleteCascade(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}
	s.metrics.ObserveDBQuery("user_delete_cascade", time.Since(start))

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
