package service

import (
	"context"
	"errors"
	"time"

	"clover/internal/apperr"
	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/repository"
	"clover/internal/secrets"
	"clover/internal/uploadpost"
)

const errUploadPostNotConfigured = "upload-post not configured"

type UploadPostInput struct {
	// APIKey keeps the stored key when nil.
	APIKey          *string
	ManagedUser     string
	FacebookPageIDs []string
}

type UploadPostSettingsView struct {
	ManagedUser     string    `json:"managed_user"`
	FacebookPageIDs []string  `json:"facebook_page_ids"`
	HasAPIKey       bool      `json:"has_api_key"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newUploadPostView(s *models.UploadPostSettings) *UploadPostSettingsView {
	ids := []string(s.FacebookPageIDs)
	if ids == nil {
		ids = []string{}
	}
	return &UploadPostSettingsView{
		ManagedUser:     s.ManagedUser,
		FacebookPageIDs: ids,
		HasAPIKey:       s.APIKey != "",
		UpdatedAt:       s.UpdatedAt,
	}
}

type UploadPostService interface {
	Get(ctx context.Context, userID string) (*UploadPostSettingsView, error)
	Save(ctx context.Context, userID string, in UploadPostInput) (*UploadPostSettingsView, error)
	PublishScheduled(ctx context.Context, post models.ScheduledPost) (models.PostStatus, string)
}

type uploadPostService struct {
	settingsRepo repository.UploadPostRepository
	sealer       *secrets.Sealer
	open         PublisherFactory
}

func NewUploadPostService(settingsRepo repository.UploadPostRepository, sealer *secrets.Sealer, open PublisherFactory) UploadPostService {
	return &uploadPostService{settingsRepo: settingsRepo, sealer: sealer, open: open}
}

func (s *uploadPostService) Get(ctx context.Context, userID string) (*UploadPostSettingsView, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newUploadPostView(settings), nil
}

func (s *uploadPostService) Save(ctx context.Context, userID string, in UploadPostInput) (*UploadPostSettingsView, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		settings = &models.UploadPostSettings{UserID: userID}
	}

	if in.APIKey != nil {
		sealed, err := s.sealer.Seal(*in.APIKey)
		if err != nil {
			return nil, err
		}
		settings.APIKey = sealed
	}
	if settings.APIKey == "" {
		return nil, apperr.Invalid("api_key", "api key is required")
	}

	settings.ManagedUser = in.ManagedUser
	settings.FacebookPageIDs = in.FacebookPageIDs

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	return newUploadPostView(settings), nil
}

// PublishScheduled sends one due post through the owner's Upload-Post
// account and returns the post's next status with the error text, if any.
func (s *uploadPostService) PublishScheduled(ctx context.Context, post models.ScheduledPost) (models.PostStatus, string) {
	log := logger.WithFields(logger.Fields{"user_id": post.UserID, "post_id": post.ID, "platform": post.Platform})

	settings, err := s.settingsRepo.GetByUserID(ctx, post.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.PostFailed, errUploadPostNotConfigured
		}
		log.WithError(err).Error("loading upload-post settings")
		return models.PostFailed, err.Error()
	}

	apiKey, err := s.sealer.Open(settings.APIKey)
	if err != nil {
		log.WithError(err).Error("opening upload-post api key")
		return models.PostFailed, errUploadPostNotConfigured
	}

	_, err = s.open(apiKey).Publish(ctx, uploadpost.Post{
		User:            settings.ManagedUser,
		Platform:        post.Platform,
		Title:           post.Title,
		Content:         post.Content,
		MediaURLs:       post.MediaURLs,
		FacebookPageIDs: settings.FacebookPageIDs,
	})
	if err != nil {
		log.WithError(err).Warn("scheduled post failed")
		return models.PostFailed, err.Error()
	}

	log.Info("scheduled post published")
	return models.PostPublished, ""
}
