package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-app/lms-api/internal/service"
	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/response"
	"github.com/learnhub-app/lms-api/pkg/storage"
)

// UploadHandler handles multipart file uploads.
type UploadHandler struct {
	service *service.UploadService
	maxSize int64
}

// NewUploadHandler creates a new upload handler. maxSize of zero disables
// the size check.
func NewUploadHandler(svc *service.UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{service: svc, maxSize: maxSize}
}

// Upload accepts a multipart file field named "file" and returns the
// stored file's URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no file uploaded"))
		return
	}
	if h.maxSize > 0 && fileHeader.Size > h.maxSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file too large"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable file"))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file"))
		return
	}

	url, err := h.service.Upload(c.Request.Context(), storage.File{
		Name:        filepath.Base(fileHeader.Filename),
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"url": url})
}
