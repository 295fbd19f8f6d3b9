package service

import (
	"context"
	"fmt"
	"io"

	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/repository"
	"clover/internal/storage"
)

type MediaService interface {
	List(ctx context.Context, userID string) ([]models.MediaFile, error)
	Upload(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (*models.MediaFile, error)
	Delete(ctx context.Context, userID, id string) error
	URL(ctx context.Context, userID, id string) (string, error)
}

type mediaService struct {
	mediaRepo repository.MediaRepository
	storage   storage.Storage
}

func NewMediaService(mediaRepo repository.MediaRepository, storage storage.Storage) MediaService {
	return &mediaService{mediaRepo: mediaRepo, storage: storage}
}

func (s *mediaService) List(ctx context.Context, userID string) ([]models.MediaFile, error) {
	return s.mediaRepo.List(ctx, userID)
}

func (s *mediaService) Upload(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (*models.MediaFile, error) {
	objectName, err := s.storage.Upload(ctx, userID, "media", fileName, file, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("storing media file: %w", err)
	}

	media := &models.MediaFile{
		UserID:      userID,
		Name:        fileName,
		StoragePath: objectName,
		MimeType:    storage.ContentType(contentType, fileName),
		Size:        size,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		if delErr := s.storage.Delete(ctx, objectName); delErr != nil {
			logger.WithError(delErr).WithField("object", objectName).Warn("orphaned media blob")
		}
		return nil, err
	}

	return media, nil
}

// Delete removes the blob first, then the row.
func (s *mediaService) Delete(ctx context.Context, userID, id string) error {
	media, err := s.mediaRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, media.StoragePath); err != nil {
		return err
	}

	return s.mediaRepo.Delete(ctx, userID, id)
}

func (s *mediaService) URL(ctx context.Context, userID, id string) (string, error) {
	media, err := s.mediaRepo.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}

	return s.storage.PresignedURL(ctx, media.StoragePath)
}
