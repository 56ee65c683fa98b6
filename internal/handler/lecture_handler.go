package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/service"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/response"
)

// LectureHandler handles lecture endpoints.
type LectureHandler struct {
	service *service.LectureService
}

// NewLectureHandler creates a new lecture handler.
func NewLectureHandler(svc *service.LectureService) *LectureHandler {
	return &LectureHandler{service: svc}
}

// Add attaches a lecture to a course.
func (h *LectureHandler) Add(c *gin.Context) {
	var req service.CreateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lecture payload"))
		return
	}

	lecture, err := h.service.Add(c.Request.Context(), currentUserFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, lecture)
}

// List returns the lectures of a course in display order. Public.
func (h *LectureHandler) List(c *gin.Context) {
	lectures, err := h.service.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lectures)
}

// Delete removes a lecture.
func (h *LectureHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUserFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "lecture deleted"})
}
