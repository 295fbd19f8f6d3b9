package service

import (
	"context"

	"clover/internal/models"
	"clover/internal/repository"
)

type PromptInput struct {
	Title      string
	Content    string
	Category   string
	Tags       []string
	IsFavorite bool
}

// PromptUpdate carries only the fields the caller sent.
type PromptUpdate struct {
	Title      *string
	Content    *string
	Category   *string
	Tags       []string
	IsFavorite *bool
}

type PromptService interface {
	List(ctx context.Context, userID string) ([]models.Prompt, error)
	Create(ctx context.Context, userID string, in PromptInput) (*models.Prompt, error)
	Update(ctx context.Context, userID, id string, in PromptUpdate) (*models.Prompt, error)
	ToggleFavorite(ctx context.Context, userID, id string) (*models.Prompt, error)
	Delete(ctx context.Context, userID, id string) error
}

type promptService struct {
	promptRepo repository.PromptRepository
}

func NewPromptService(promptRepo repository.PromptRepository) PromptService {
	return &promptService{promptRepo: promptRepo}
}

func (s *promptService) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	return s.promptRepo.List(ctx, userID)
}

func (s *promptService) Create(ctx context.Context, userID string, in PromptInput) (*models.Prompt, error) {
	prompt := &models.Prompt{
		UserID:     userID,
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		Tags:       in.Tags,
		IsFavorite: in.IsFavorite,
	}

	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	return prompt, nil
}

func (s *promptService) Update(ctx context.Context, userID, id string, in PromptUpdate) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		prompt.Title = *in.Title
	}
	if in.Content != nil {
		prompt.Content = *in.Content
	}
	if in.Category != nil {
		prompt.Category = *in.Category
	}
	if in.Tags != nil {
		prompt.Tags = in.Tags
	}
	if in.IsFavorite != nil {
		prompt.IsFavorite = *in.IsFavorite
	}

	if err := s.promptRepo.Update(ctx, prompt); err != nil {
		return nil, err
	}

	return prompt, nil
}

func (s *promptService) ToggleFavorite(ctx context.Context, userID, id string) (*models.Prompt, error) {
	return s.promptRepo.ToggleFavorite(ctx, userID, id)
}

func (s *promptService) Delete(ctx context.Context, userID, id string) error {
	return s.promptRepo.Delete(ctx, userID, id)
}
