package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"clover/internal/config"
	"clover/internal/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage keeps user blobs: uploaded media, generated audio and subtitle files.
type Storage interface {
	Upload(ctx context.Context, userID, folder, fileName string, file io.Reader, size int64, contentType string) (string, error)
	UploadBytes(ctx context.Context, userID, folder, fileName string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName string) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	return &MinIOClient{
		client: client,
		bucket: cfg.MinIO.BucketName,
		expiry: cfg.MinIO.URLExpiry,
	}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", m.bucket, err)
	}

	logger.WithFields(logger.Fields{"bucket": m.bucket}).Info("bucket created")
	return nil
}

// ObjectName builds users/<user>/<folder>/<yyyy>/<mm>/<uuid><ext>. The user
// prefix keeps one user's objects apart from another's.
func ObjectName(userID, folder, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("users/%s/%s/%d/%02d/%s%s",
		userID,
		folder,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)
}

// ContentType prefers the declared type and falls back to the file extension.
func ContentType(declared, fileName string) string {
	if declared != "" {
		return declared
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (m *MinIOClient) Upload(ctx context.Context, userID, folder, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	now := time.Now()
	objectName := ObjectName(userID, folder, fileName, now)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: ContentType(contentType, fileName),
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"user-id":           userID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("uploading to minio: %w", err)
	}

	return objectName, nil
}

func (m *MinIOClient) UploadBytes(ctx context.Context, userID, folder, fileName string, data []byte, contentType string) (string, error) {
	return m.Upload(ctx, userID, folder, fileName, bytes.NewReader(data), int64(len(data)), contentType)
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("deleting from minio: %w", err)
	}
	return nil
}

// PresignedURL returns a time-limited GET url for the object.
func (m *MinIOClient) PresignedURL(ctx context.Context, objectName string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", objectName, err)
	}
	return u.String(), nil
}
