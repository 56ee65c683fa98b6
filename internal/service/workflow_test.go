package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub-app/lms-api/internal/models"
)

// Full lifecycle across the services: register both roles, create a course,
// enroll, assign, submit, resubmit, and verify the student's annotated view
// at each step.
func TestCourseWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()

	users := newMockUserRepo()
	courses := newMockCourseRepo()
	enrollments := &mockEnrollmentRepo{}
	assignments := &mockAssignmentRepo{}
	submissions := &mockSubmissionRepo{}
	courses.enrollments = enrollments
	courses.assignments = assignments

	authSvc := NewAuthService(users, nil, nil, AuthConfig{Secret: "wf_secret", Expiration: time.Hour, Issuer: "learnhub-test"})
	courseSvc := NewCourseService(courses, enrollments, nil, nil)
	assignmentSvc := NewAssignmentService(assignments, submissions, courses, nil, nil)

	instructorRes, err := authSvc.Register(ctx, models.RegisterRequest{
		Email: "ada@example.com", Password: "secret1", Name: "Ada", Role: models.RoleInstructor,
	})
	require.NoError(t, err)
	instructor, err := users.FindByID(ctx, instructorRes.User.ID)
	require.NoError(t, err)

	course, err := courseSvc.Create(ctx, instructor, CreateCourseRequest{Title: "Algorithms", Description: "d"})
	require.NoError(t, err)

	studentRes, err := authSvc.Register(ctx, models.RegisterRequest{
		Email: "sam@example.com", Password: "secret1", Name: "Sam",
	})
	require.NoError(t, err)
	student, err := users.FindByID(ctx, studentRes.User.ID)
	require.NoError(t, err)

	_, err = courseSvc.Enroll(ctx, student, course.ID)
	require.NoError(t, err)

	assignment, err := assignmentSvc.Create(ctx, instructor, course.ID, CreateAssignmentRequest{
		Title: "hw1", Description: "d", DueDate: "2025-01-01",
	})
	require.NoError(t, err)

	submitted, err := assignmentSvc.Submit(ctx, student, assignment.ID, SubmitRequest{FileURL: "f1"})
	require.NoError(t, err)

	view, err := assignmentSvc.ListForCourse(ctx, student, course.ID)
	require.NoError(t, err)
	require.Len(t, view, 1)
	require.NotNil(t, view[0].IsSubmitted)
	assert.True(t, *view[0].IsSubmitted)
	require.NotNil(t, view[0].SubmissionURL)
	assert.Equal(t, "f1", *view[0].SubmissionURL)

	updated, err := assignmentSvc.UpdateSubmission(ctx, student, assignment.ID, SubmitRequest{FileURL: "f2"})
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, updated.ID)

	view, err = assignmentSvc.ListForCourse(ctx, student, course.ID)
	require.NoError(t, err)
	require.Len(t, view, 1)
	require.NotNil(t, view[0].SubmissionURL)
	assert.Equal(t, "f2", *view[0].SubmissionURL)
}
