package handler

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/response"
	"github.com/learnhub-app/lms-api/pkg/storage"
)

// FilesHandler serves locally stored uploads. Only mounted when the local
// storage provider is configured.
type FilesHandler struct {
	store *storage.LocalStorage
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(store *storage.LocalStorage) *FilesHandler {
	return &FilesHandler{store: store}
}

// Download streams a stored file after validating its download token.
func (h *FilesHandler) Download(c *gin.Context) {
	name := c.Param("name")
	token := c.Query("token")

	file, err := h.store.Open(name, token)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid download token"))
		return
	}
	defer file.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
