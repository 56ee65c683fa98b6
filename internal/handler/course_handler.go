package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/service"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/response"
)

// CourseHandler handles course lifecycle and enrollment endpoints.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Create authors a course owned by the current user.
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.service.Create(c.Request.Context(), currentUserFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}

// List returns every course. Public.
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// Get returns one course. Public.
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// Update mutates the course's presentation fields.
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.service.Update(c.Request.Context(), currentUserFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, course)
}

// Delete removes the course and all dependent records.
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUserFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "course deleted"})
}

// Enroll registers the current student on the course.
func (h *CourseHandler) Enroll(c *gin.Context) {
	enrollment, err := h.service.Enroll(c.Request.Context(), currentUserFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

// CheckEnrollment reports whether the current user is enrolled.
func (h *CourseHandler) CheckEnrollment(c *gin.Context) {
	enrolled, err := h.service.CheckEnrollment(c.Request.Context(), currentUserFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"enrolled": enrolled})
}

// MyCourses lists the courses relevant to the current user's role.
func (h *CourseHandler) MyCourses(c *gin.Context) {
	courses, err := h.service.MyCourses(c.Request.Context(), currentUserFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}
