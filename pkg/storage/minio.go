// Package storage provides the object-storage adapter for uploaded note
// images, backed by MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectStore defines the interface for note image storage.
// Use this interface for dependency injection to enable mocking in tests.
type ObjectStore interface {
	// UploadNoteImage stores an uploaded note image under the owner's prefix
	// and returns the object name and a public URL.
	UploadNoteImage(ctx context.Context, userID string, fileName string, file io.Reader, size int64) (objectName string, url string, err error)

	// DeleteObject removes a stored object.
	DeleteObject(ctx context.Context, objectName string) error
}

// Config holds MinIO connection configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinIOStore implements ObjectStore against a MinIO (or S3-compatible) server.
type MinIOStore struct {
	client *minio.Client
	bucket string
	useSSL bool
	host   string
	logger *zap.Logger
}

// NewMinIOStore creates the store and ensures the bucket exists.
func NewMinIOStore(ctx context.Context, cfg *Config, logger *zap.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		useSSL: cfg.UseSSL,
		host:   cfg.Endpoint,
		logger: logger.Named("storage"),
	}, nil
}

// UploadNoteImage stores an uploaded note image under the owner's prefix.
// Object names are notes/{userID}/{yyyy}/{mm}/{uuid}{ext} so per-user cleanup
// stays a prefix operation.
func (s *MinIOStore) UploadNoteImage(ctx context.Context, userID string, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("notes/%s/%d/%02d/%s%s",
		userID, now.Year(), now.Month(), uuid.New().String(), fileExt)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-by":       userID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload note image: %w", err)
	}

	s.logger.Debug("Uploaded note image",
		zap.String("object", objectName),
		zap.Int64("size", size))

	return objectName, s.objectURL(objectName), nil
}

// DeleteObject removes a stored object.
func (s *MinIOStore) DeleteObject(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

// objectURL builds the public URL for a stored object.
func (s *MinIOStore) objectURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.host, s.bucket, objectName)
}

// Ensure MinIOStore implements ObjectStore at compile time.
var _ ObjectStore = (*MinIOStore)(nil)
