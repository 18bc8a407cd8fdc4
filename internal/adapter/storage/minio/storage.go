package minio

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/delilar/avito-intenship-2025/internal/app/config"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage keeps listing images in a MinIO bucket. The editor treats the
// uploaded bytes as opaque; it only needs a handle back.
type Storage struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewStorage(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", cfg.Bucket, err, existsErr)
		}
	}

	return &Storage{client: client, bucket: cfg.Bucket, log: log}, nil
}

// Upload stores the blob under a generated key, preserving the original
// extension, and returns the public URL.
func (s *Storage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), filepath.Ext(fileName))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.log.Debugf("minio.Storage.Upload: stored %s (%d bytes) as %s", fileName, len(data), fileURL)
	return fileURL, nil
}
