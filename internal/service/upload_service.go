package service

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/learnhub-app/lms-api/pkg/errors"
	"github.com/learnhub-app/lms-api/pkg/storage"
)

// UploadService pushes user files to the configured storage provider and
// returns the public URL.
type UploadService struct {
	uploader storage.Uploader
	logger   *zap.Logger
}

// NewUploadService constructs UploadService.
func NewUploadService(uploader storage.Uploader, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{uploader: uploader, logger: logger}
}

// Upload stores the file and returns its URL. An empty file is a validation
// error; a provider failure surfaces with the provider's message preserved.
func (s *UploadService) Upload(ctx context.Context, file storage.File) (string, error) {
	if len(file.Data) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "no file uploaded")
	}

	url, err := s.uploader.Upload(ctx, file)
	if err != nil {
		s.logger.Error("upload failed", zap.String("file", file.Name), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, err.Error())
	}

	s.logger.Info("file uploaded", zap.String("file", file.Name))
	return url, nil
}
