package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/biznexus-ai/backend/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioArchive implements ObjectStorage against any S3-compatible endpoint.
// It is optional: when archiving is disabled the upload flow simply skips it.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

func NewMinioArchive(cfg config.ArchiveConfig) (*MinioArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

func (a *MinioArchive) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list archive objects: %w", obj.Err)
		}
		objects = append(objects, ObjectInfo{Key: obj.Key, Size: obj.Size})
	}
	return objects, nil
}

func (a *MinioArchive) UploadObject(ctx context.Context, key string, data []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("upload archive object %s: %w", key, err)
	}
	return nil
}

func (a *MinioArchive) DownloadObject(ctx context.Context, key string, destPath string) error {
	if err := a.client.FGetObject(ctx, a.bucket, key, destPath, minio.GetObjectOptions{}); err != nil {
		// FGetObject may leave a partial part file behind on failure.
		os.Remove(destPath)
		return fmt.Errorf("download archive object %s: %w", key, err)
	}
	return nil
}
