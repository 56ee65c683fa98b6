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

func TestMessageServicePostSnapshotsSender(t *testing.T) {
	courses := newMockCourseRepo()
	course := seedCourse(t, courses, "inst-1")
	svc := NewMessageService(&mockMessageRepo{}, courses, nil, nil, nil)

	msg, err := svc.Post(context.Background(), studentActor("stud-1", "Sam"), course.ID, PostMessageRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "stud-1", msg.SenderID)
	assert.Equal(t, "Sam", msg.SenderName)
	assert.Equal(t, models.RoleStudent, msg.SenderRole)
	assert.Equal(t, "hello", msg.Body)
}

func TestMessageServicePostMissingCourse(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, newMockCourseRepo(), nil, nil, nil)

	_, err := svc.Post(context.Background(), studentActor("stud-1", "Sam"), "missing", PostMessageRequest{Message: "hi"})
	assert.Equal(t, appErrors.ErrNotFound.Code, asAppError(t, err).Code)
}

func TestMessageServiceListOrdering(t *testing.T) {
	courses := newMockCourseRepo()
	course := seedCourse(t, courses, "inst-1")
	messages := &mockMessageRepo{}
	svc := NewMessageService(messages, courses, nil, nil, nil)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, body := range []string{"m1", "m2", "m3"} {
		require.NoError(t, messages.Create(context.Background(), &models.Message{
			CourseID:  course.ID,
			SenderID:  "stud-1",
			Body:      body,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}
	// equal timestamps fall back to insertion order
	require.NoError(t, messages.Create(context.Background(), &models.Message{
		CourseID: course.ID, SenderID: "stud-2", Body: "m4", Timestamp: base.Add(2 * time.Second),
	}))

	got, err := svc.List(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, got, 4)
	bodies := make([]string, len(got))
	for i, m := range got {
		bodies[i] = m.Body
	}
	assert.Equal(t, []string{"m1", "m2", "m3", "m4"}, bodies)
}

func TestMessageServiceListEmptyFeed(t *testing.T) {
	courses := newMockCourseRepo()
	course := seedCourse(t, courses, "inst-1")
	svc := NewMessageService(&mockMessageRepo{}, courses, nil, nil, nil)

	got, err := svc.List(context.Background(), course.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
