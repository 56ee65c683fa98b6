package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub-app/lms-api/internal/models"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
)

func TestUserServiceListHidesCredentials(t *testing.T) {
	users := newMockUserRepo()
	users.users["u1"] = models.User{ID: "u1", Email: "a@example.com", PasswordHash: "hash", Name: "Ada", Role: models.RoleInstructor, CreatedAt: time.Now()}
	users.users["u2"] = models.User{ID: "u2", Email: "b@example.com", PasswordHash: "hash", Name: "Sam", Role: models.RoleStudent, CreatedAt: time.Now().Add(time.Second)}

	svc := NewUserService(users, nil, nil)
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u1", list[0].ID)
	assert.Equal(t, "Ada", list[0].Name)
}

func TestUserServiceDelete(t *testing.T) {
	users := newMockUserRepo()
	users.users["u1"] = models.User{ID: "u1", Email: "a@example.com", Role: models.RoleInstructor}

	svc := NewUserService(users, nil, nil)
	require.NoError(t, svc.Delete(context.Background(), "u1"))
	assert.Equal(t, []string{"u1"}, users.deleted)

	err := svc.Delete(context.Background(), "u1")
	assert.Equal(t, appErrors.ErrNotFound.Code, asAppError(t, err).Code)
}
