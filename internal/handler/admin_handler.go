package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/service"
	"github.com/learnhub-app/lms-api/pkg/response"
)

// AdminHandler handles the admin user-management endpoints. RBAC middleware
// restricts the routes to admins.
type AdminHandler struct {
	service *service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(svc *service.UserService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListUsers returns all users without credential fields.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// DeleteUser removes a user and cascades through their owned courses and
// enrollments.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "user deleted"})
}
