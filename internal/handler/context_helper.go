package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/middleware"
	"github.com/learnhub-app/lms-api/internal/models"
)

func currentUserFromContext(c *gin.Context) *models.User {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
