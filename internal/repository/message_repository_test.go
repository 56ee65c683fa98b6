package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/learnhub-app/lms-api/internal/models"
)

func TestMessageRepositoryCreateFillsSequence(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewMessageRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO messages")).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(42)))

	message := &models.Message{
		CourseID:   "course-1",
		SenderID:   "stud-1",
		SenderName: "Sam",
		SenderRole: models.RoleStudent,
		Body:       "hello",
	}
	require.NoError(t, repo.Create(context.Background(), message))
	require.Equal(t, int64(42), message.Seq)
	require.NotEmpty(t, message.ID)
	require.False(t, message.Timestamp.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryListByCourseOrdersByTimeThenSeq(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewMessageRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "course_id", "sender_id", "sender_name", "sender_role", "message", "timestamp", "seq"}).
		AddRow("m1", "course-1", "stud-1", "Sam", "student", "first", now, int64(1)).
		AddRow("m2", "course-1", "inst-1", "Ada", "instructor", "second", now, int64(2))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY timestamp ASC, seq ASC")).
		WithArgs("course-1").
		WillReturnRows(rows)

	messages, err := repo.ListByCourse(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "first", messages[0].Body)
	require.Equal(t, int64(2), messages[1].Seq)
	require.NoError(t, mock.ExpectationsWereMet())
}
