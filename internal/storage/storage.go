package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry applies when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the object storage operations used by log exports.
type FileStorage interface {
	// PutObject uploads body under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
