package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/service"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/response"
)

// MessageHandler handles the per-course chat endpoints.
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// Post appends a message to the course feed as the current user.
func (h *MessageHandler) Post(c *gin.Context) {
	var req service.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	message, err := h.service.Post(c.Request.Context(), currentUserFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message)
}

// List returns the whole feed for a course, oldest first.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, messages)
}
