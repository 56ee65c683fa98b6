package storage

import (
	"context"
	"strings"
)

// Resource type hints understood by the upload providers.
const (
	ResourceAuto = "auto"
	ResourceRaw  = "raw"
)

// File is an in-memory payload handed to an Uploader.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores a binary payload and returns a durable retrievable URL.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// ResourceType maps a MIME type to the provider resource hint. Documents
// must be stored raw or the CDN mangles them on delivery.
func ResourceType(contentType string) string {
	if contentType == "application/pdf" ||
		strings.Contains(contentType, "msword") ||
		strings.Contains(contentType, "officedocument") {
		return ResourceRaw
	}
	return ResourceAuto
}
