package service

import (
	"clover/internal/config"
	"clover/internal/repository"
	"clover/internal/secrets"
	"clover/internal/storage"
)

type Service struct {
	Auth          AuthService
	Prompt        PromptService
	Media         MediaService
	Image         ImageService
	Voice         VoiceService
	ScheduledPost ScheduledPostService
	Publishing    PublishingService
	WordPress     WordPressService
	UploadPost    UploadPostService
	Points        PointsService
	Subscription  SubscriptionService
	GenerationLog GenerationLogService
	Content       ContentService
	Feed          FeedService
	Subtitle      SubtitleService
	Tables        TablesService
}

// Dependencies are the outside collaborators the services call.
type Dependencies struct {
	Storage   storage.Storage
	Sealer    *secrets.Sealer
	AI        TextGenerator
	Images    ImageGenerator
	Voice     Speaker
	Feeds     FeedFetcher
	Articles  ArticleFetcher
	WordPress WordPressFactory
	Publisher PublisherFactory
}

func NewService(rep *repository.Repository, cfg *config.Config, deps Dependencies) *Service {
	logs := NewGenerationLogService(rep.GenerationLog)

	return &Service{
		Auth:          NewAuthService(cfg),
		Prompt:        NewPromptService(rep.Prompt),
		Media:         NewMediaService(rep.Media, deps.Storage),
		Image:         NewImageService(rep.Image, deps.Images),
		Voice:         NewVoiceService(rep.Voice, deps.Voice, deps.Storage),
		ScheduledPost: NewScheduledPostService(rep.ScheduledPost),
		Publishing:    NewPublishingService(rep.Publishing),
		WordPress:     NewWordPressService(rep.WordPress, rep.Publishing, deps.Sealer, deps.WordPress),
		UploadPost:    NewUploadPostService(rep.UploadPost, deps.Sealer, deps.Publisher),
		Points:        NewPointsService(rep.Points),
		Subscription:  NewSubscriptionService(rep.Subscription),
		GenerationLog: logs,
		Content:       NewContentService(deps.AI, deps.Articles, logs),
		Feed:          NewFeedService(deps.Feeds),
		Subtitle:      NewSubtitleService(deps.Storage),
		Tables:        NewTablesService(rep.Tables),
	}
}
