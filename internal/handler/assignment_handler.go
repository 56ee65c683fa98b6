package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/service"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/response"
)

// AssignmentHandler handles assignment and submission endpoints.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// Create attaches an assignment to a course.
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	assignment, err := h.service.Create(c.Request.Context(), currentUserFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, assignment)
}

// ListForCourse returns a course's assignments, annotated with the current
// student's submission state when the caller is a student.
func (h *AssignmentHandler) ListForCourse(c *gin.Context) {
	assignments, err := h.service.ListForCourse(c.Request.Context(), currentUserFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignments)
}

// Delete removes an assignment.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUserFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "assignment deleted"})
}

// Submit creates the current student's submission for an assignment.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), currentUserFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// UpdateSubmission resubmits the current student's file for an assignment.
func (h *AssignmentHandler) UpdateSubmission(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	submission, err := h.service.UpdateSubmission(c.Request.Context(), currentUserFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, submission)
}

// ListSubmitted returns the ids of assignments the current student submitted.
func (h *AssignmentHandler) ListSubmitted(c *gin.Context) {
	ids, err := h.service.ListSubmittedIDs(c.Request.Context(), currentUserFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"submitted": ids})
}

// SubmissionsByAssignment lists all submissions for an assignment, for the
// instructor-side grading view.
func (h *AssignmentHandler) SubmissionsByAssignment(c *gin.Context) {
	submissions, err := h.service.SubmissionsByAssignment(c.Request.Context(), currentUserFromContext(c), c.Param("assignment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, submissions)
}
