package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/learnhub-app/lms-api/internal/models"
)

// In-memory repository doubles shared by the service tests. Unique
// constraints surface as pq errors the way the Postgres driver reports them.

func uniqueViolation() error {
	return &pq.Error{Code: "23505"}
}

type mockCourseRepo struct {
	courses map[string]models.Course
	nextID  int

	// optional cascade targets, wired by tests that verify propagation
	lectures    *mockLectureRepo
	assignments *mockAssignmentRepo
	enrollments *mockEnrollmentRepo
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: map[string]models.Course{}}
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	return m.sorted(func(models.Course) bool { return true }), nil
}

func (m *mockCourseRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	return m.sorted(func(c models.Course) bool { return c.InstructorID == instructorID }), nil
}

func (m *mockCourseRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return m.sorted(func(c models.Course) bool { return want[c.ID] }), nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		m.nextID++
		course.ID = fmt.Sprintf("course-%d", m.nextID)
	}
	course.CreatedAt = time.Now().UTC()
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) DeleteCascade(ctx context.Context, id string) error {
	delete(m.courses, id)
	if m.lectures != nil {
		m.lectures.dropByCourse(id)
	}
	if m.assignments != nil {
		m.assignments.dropByCourse(id)
	}
	if m.enrollments != nil {
		m.enrollments.dropByCourse(id)
	}
	return nil
}

func (m *mockCourseRepo) sorted(keep func(models.Course) bool) []models.Course {
	var out []models.Course
	for _, c := range m.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type mockEnrollmentRepo struct {
	enrollments []models.Enrollment
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	for _, e := range m.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return uniqueViolation()
		}
	}
	if enrollment.ID == "" {
		enrollment.ID = "enroll-" + enrollment.StudentID + "-" + enrollment.CourseID
	}
	enrollment.EnrolledAt = time.Now().UTC()
	m.enrollments = append(m.enrollments, *enrollment)
	return nil
}

func (m *mockEnrollmentRepo) dropByCourse(courseID string) {
	kept := m.enrollments[:0]
	for _, e := range m.enrollments {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	m.enrollments = kept
}

type mockLectureRepo struct {
	lectures []models.Lecture
	nextID   int
}

func (m *mockLectureRepo) FindByID(ctx context.Context, id string) (*models.Lecture, error) {
	for _, l := range m.lectures {
		if l.ID == id {
			lecture := l
			return &lecture, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockLectureRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Lecture, error) {
	var out []models.Lecture
	for _, l := range m.lectures {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockLectureRepo) Create(ctx context.Context, lecture *models.Lecture) error {
	m.nextID++
	if lecture.ID == "" {
		lecture.ID = fmt.Sprintf("lecture-%d", m.nextID)
	}
	lecture.CreatedAt = time.Now().UTC()
	m.lectures = append(m.lectures, *lecture)
	return nil
}

func (m *mockLectureRepo) Delete(ctx context.Context, id string) error {
	kept := m.lectures[:0]
	for _, l := range m.lectures {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.lectures = kept
	return nil
}

func (m *mockLectureRepo) dropByCourse(courseID string) {
	kept := m.lectures[:0]
	for _, l := range m.lectures {
		if l.CourseID != courseID {
			kept = append(kept, l)
		}
	}
	m.lectures = kept
}

type mockAssignmentRepo struct {
	assignments []models.Assignment
	nextID      int
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			assignment := a
			return &assignment, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	m.nextID++
	if assignment.ID == "" {
		assignment.ID = fmt.Sprintf("assignment-%d", m.nextID)
	}
	assignment.CreatedAt = time.Now().UTC()
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, id string) error {
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.assignments = kept
	return nil
}

func (m *mockAssignmentRepo) dropByCourse(courseID string) {
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if a.CourseID != courseID {
			kept = append(kept, a)
		}
	}
	m.assignments = kept
}

type mockSubmissionRepo struct {
	submissions []models.Submission
	nextID      int
}

func (m *mockSubmissionRepo) FindByPair(ctx context.Context, assignmentID, studentID string) (*models.Submission, error) {
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			sub := s
			return &sub, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubmissionRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	for _, s := range m.submissions {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return uniqueViolation()
		}
	}
	m.nextID++
	if submission.ID == "" {
		submission.ID = fmt.Sprintf("submission-%d", m.nextID)
	}
	submission.SubmittedAt = time.Now().UTC()
	m.submissions = append(m.submissions, *submission)
	return nil
}

func (m *mockSubmissionRepo) UpdateFile(ctx context.Context, id, fileURL string, submittedAt time.Time) error {
	for i := range m.submissions {
		if m.submissions[i].ID == id {
			m.submissions[i].FileURL = fileURL
			m.submissions[i].SubmittedAt = submittedAt
			return nil
		}
	}
	return sql.ErrNoRows
}

type mockMessageRepo struct {
	messages []models.Message
	seq      int64
}

func (m *mockMessageRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.messages {
		if msg.CourseID == courseID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Seq < out[j].Seq
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (m *mockMessageRepo) Create(ctx context.Context, message *models.Message) error {
	m.seq++
	message.Seq = m.seq
	if message.ID == "" {
		message.ID = fmt.Sprintf("message-%d", m.seq)
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	m.messages = append(m.messages, *message)
	return nil
}

type mockUserRepo struct {
	users   map[string]models.User
	deleted []string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]models.User{}}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return uniqueViolation()
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) DeleteCascade(ctx context.Context, id string) error {
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}
