package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/learnhub-app/lms-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "instructor_id", "instructor_name", "thumbnail_url", "created_at"})
	for _, id := range ids {
		rows.AddRow(id, "Algorithms", "d", "inst-1", "Ada", "", time.Now())
	}
	return rows
}

func TestCourseRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	course := &models.Course{Title: "Algorithms", Description: "d", InstructorID: "inst-1", InstructorName: "Ada"}
	require.NoError(t, repo.Create(context.Background(), course))
	require.NotEmpty(t, course.ID)
	require.False(t, course.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, instructor_id")).
		WithArgs("course-1").
		WillReturnRows(courseRows("course-1"))

	course, err := repo.FindByID(context.Background(), "course-1")
	require.NoError(t, err)
	require.Equal(t, "inst-1", course.InstructorID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListByIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN ($1,$2)")).
		WithArgs("course-1", "course-2").
		WillReturnRows(courseRows("course-1", "course-2"))

	courses, err := repo.ListByIDs(context.Background(), []string{"course-1", "course-2"})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListByIDsEmptySet(t *testing.T) {
	db, _, cleanup := newMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	courses, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, courses)
}

func TestCourseRepositoryDeleteCascadeTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs("course-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lectures WHERE course_id = $1")).
		WithArgs("course-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE course_id = $1")).
		WithArgs("course-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE course_id = $1")).
		WithArgs("course-1").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), "course-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteCascadeRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs("course-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lectures WHERE course_id = $1")).
		WithArgs("course-1").WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	require.Error(t, repo.DeleteCascade(context.Background(), "course-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
