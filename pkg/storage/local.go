package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage persists uploads on disk and serves them through signed URLs.
// It stands in for the CDN collaborator in development environments.
type LocalStorage struct {
	baseDir string
	urlPath string
	signer  *DownloadTokenSigner
}

// NewLocalStorage ensures the base directory exists and returns a handle.
// urlPath is the route prefix the API serves stored files from.
func NewLocalStorage(baseDir, urlPath string, signer *DownloadTokenSigner) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, urlPath: strings.TrimRight(urlPath, "/"), signer: signer}, nil
}

// Upload writes the payload to disk under a collision-free name and returns
// a signed download URL.
func (s *LocalStorage) Upload(_ context.Context, file File) (string, error) {
	name := uuid.NewString()
	if ext := filepath.Ext(file.Name); ext != "" {
		name += ext
	}

	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	token, _, err := s.signer.Generate(name)
	if err != nil {
		return "", fmt.Errorf("sign download url: %w", err)
	}

	return fmt.Sprintf("%s/%s?token=%s", s.urlPath, name, token), nil
}

// Open validates the download token and returns a read handle for the file.
func (s *LocalStorage) Open(name, token string) (*os.File, error) {
	signedName, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, err
	}
	if signedName != name {
		return nil, fmt.Errorf("token does not match file")
	}

	// the stored name is server-generated; reject anything path-like
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid file name")
	}

	file, err := os.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}
