package service

import (
	"context"
	"strings"

	"clover/internal/apperr"
	"clover/internal/models"
	"clover/internal/repository"
)

const defaultLogLimit = 50

type GenerationLogService interface {
	List(ctx context.Context, userID string, limit int) ([]models.AIGenerationLog, error)
	Create(ctx context.Context, userID, prompt, result, toolType string) (*models.AIGenerationLog, error)
}

type generationLogService struct {
	logRepo repository.GenerationLogRepository
}

func NewGenerationLogService(logRepo repository.GenerationLogRepository) GenerationLogService {
	return &generationLogService{logRepo: logRepo}
}

func (s *generationLogService) List(ctx context.Context, userID string, limit int) ([]models.AIGenerationLog, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultLogLimit
	}
	return s.logRepo.List(ctx, userID, limit)
}

func (s *generationLogService) Create(ctx context.Context, userID, prompt, result, toolType string) (*models.AIGenerationLog, error) {
	if strings.TrimSpace(toolType) == "" {
		return nil, apperr.Invalid("tool_type", "tool_type is required")
	}

	log := &models.AIGenerationLog{
		UserID:   userID,
		Prompt:   prompt,
		Result:   result,
		ToolType: toolType,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	return log, nil
}
