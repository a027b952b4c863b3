/*
Package storage provides the workspace file store backed by S3-compatible
object storage. Clients upload and download workspace files through presigned
URLs; the server itself only writes seed objects.
*/
package storage

import (
	"context"
	"io"
	"time"
)

// ServiceConfig holds the connection settings for the object store.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService is the public interface of the workspace file store.
type StorageService interface {
	// PresignUpload generates a presigned URL for uploading a workspace file.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// PresignDownload generates a presigned URL for downloading a workspace file.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Upload writes an object directly, used for seeding new project workspaces.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) error

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error

	// GetObjectMetadata retrieves an object's metadata.
	GetObjectMetadata(ctx context.Context, key string) (map[string]string, error)
}

// NewStorageService returns the concrete store for the given configuration.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	// Only S3-compatible backends are supported.
	return newS3Client(cfg)
}
