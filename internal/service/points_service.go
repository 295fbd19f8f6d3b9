package service

import (
	"context"

	"clover/internal/apperr"
	"clover/internal/models"
	"clover/internal/repository"
)

type PointsService interface {
	Balance(ctx context.Context, userID string) (*models.UserPoints, error)
	Add(ctx context.Context, userID string, amount int64) (*models.UserPoints, error)
}

type pointsService struct {
	pointsRepo repository.PointsRepository
}

func NewPointsService(pointsRepo repository.PointsRepository) PointsService {
	return &pointsService{pointsRepo: pointsRepo}
}

func (s *pointsService) Balance(ctx context.Context, userID string) (*models.UserPoints, error) {
	return s.pointsRepo.Get(ctx, userID)
}

func (s *pointsService) Add(ctx context.Context, userID string, amount int64) (*models.UserPoints, error) {
	if amount <= 0 {
		return nil, apperr.Invalid("amount", "amount must be positive")
	}
	return s.pointsRepo.Add(ctx, userID, amount)
}
