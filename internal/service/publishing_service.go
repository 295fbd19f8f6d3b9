package service

import (
	"context"

	"clover/internal/models"
	"clover/internal/repository"
)

type PublishingService interface {
	List(ctx context.Context, userID string) ([]models.PublishingRecord, error)
	Delete(ctx context.Context, userID, id string) error
}

type publishingService struct {
	publishingRepo repository.PublishingRepository
}

func NewPublishingService(publishingRepo repository.PublishingRepository) PublishingService {
	return &publishingService{publishingRepo: publishingRepo}
}

func (s *publishingService) List(ctx context.Context, userID string) ([]models.PublishingRecord, error) {
	return s.publishingRepo.List(ctx, userID)
}

func (s *publishingService) Delete(ctx context.Context, userID, id string) error {
	return s.publishingRepo.Delete(ctx, userID, id)
}
