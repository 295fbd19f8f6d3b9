package service

import (
	"context"
	"strings"

	"clover/internal/ai"
	"clover/internal/apperr"
	"clover/internal/imagegen"
	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/repository"
)

type GenerateImageInput struct {
	Prompt      string
	Style       string
	AspectRatio string
	IsAvatar    bool
}

type Sticker struct {
	ImageURL string `json:"imageUrl"`
	Text     string `json:"text"`
	Style    string `json:"style"`
}

type ImageService interface {
	List(ctx context.Context, userID string) ([]models.GeneratedImage, error)
	Generate(ctx context.Context, userID string, in GenerateImageInput) (*models.GeneratedImage, error)
	ToggleFavorite(ctx context.Context, userID, id string) (*models.GeneratedImage, error)
	Delete(ctx context.Context, userID, id string) error
	Sticker(ctx context.Context, text, style string) (*Sticker, error)
}

type imageService struct {
	imageRepo repository.ImageRepository
	images    ImageGenerator
}

func NewImageService(imageRepo repository.ImageRepository, images ImageGenerator) ImageService {
	return &imageService{imageRepo: imageRepo, images: images}
}

func (s *imageService) List(ctx context.Context, userID string) ([]models.GeneratedImage, error) {
	return s.imageRepo.List(ctx, userID)
}

// Generate calls the image upstream and records the result. A failure to
// record is logged and the image is still returned.
func (s *imageService) Generate(ctx context.Context, userID string, in GenerateImageInput) (*models.GeneratedImage, error) {
	prompt := in.Prompt
	if in.Style != "" {
		prompt += ", " + in.Style + " style"
	}

	url, err := s.images.Generate(ctx, imagegen.Request{Prompt: prompt, AspectRatio: in.AspectRatio})
	if err != nil {
		return nil, err
	}

	aspect := in.AspectRatio
	if aspect == "" {
		aspect = "1:1"
	}

	image := &models.GeneratedImage{
		UserID:      userID,
		Prompt:      in.Prompt,
		ImageURL:    url,
		Style:       in.Style,
		Model:       s.images.Model(),
		AspectRatio: aspect,
		IsAvatar:    in.IsAvatar,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("saving generated image")
	}

	return image, nil
}

func (s *imageService) ToggleFavorite(ctx context.Context, userID, id string) (*models.GeneratedImage, error) {
	return s.imageRepo.ToggleFavorite(ctx, userID, id)
}

func (s *imageService) Delete(ctx context.Context, userID, id string) error {
	return s.imageRepo.Delete(ctx, userID, id)
}

// Sticker renders text or an emoji as a sticker image. Nothing is stored.
func (s *imageService) Sticker(ctx context.Context, text, style string) (*Sticker, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Invalid("text", "text or emoji is required")
	}
	if style == "" {
		style = "cute"
	}
	if !ai.IsStickerStyle(style) {
		return nil, apperr.Invalid("style", "unknown sticker style %q", style)
	}

	url, err := s.images.Generate(ctx, imagegen.Request{Prompt: ai.StickerPrompt(text, style), AspectRatio: "1:1"})
	if err != nil {
		return nil, err
	}

	return &Sticker{ImageURL: url, Text: text, Style: style}, nil
}
