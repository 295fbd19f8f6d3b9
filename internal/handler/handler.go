package handlers

import (
	"clover/internal/config"
	"clover/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	PromptService        service.PromptService
	MediaService         service.MediaService
	ImageService         service.ImageService
	VoiceService         service.VoiceService
	ScheduledPostService service.ScheduledPostService
	PublishingService    service.PublishingService
	WordPressService     service.WordPressService
	UploadPostService    service.UploadPostService
	PointsService        service.PointsService
	SubscriptionService  service.SubscriptionService
	GenerationLogService service.GenerationLogService
	ContentService       service.ContentService
	FeedService          service.FeedService
	SubtitleService      service.SubtitleService
	TablesService        service.TablesService
	Cfg                  *config.Config
	Validate             *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		PromptService:        service.Prompt,
		MediaService:         service.Media,
		ImageService:         service.Image,
		VoiceService:         service.Voice,
		ScheduledPostService: service.ScheduledPost,
		PublishingService:    service.Publishing,
		WordPressService:     service.WordPress,
		UploadPostService:    service.UploadPost,
		PointsService:        service.Points,
		SubscriptionService:  service.Subscription,
		GenerationLogService: service.GenerationLog,
		ContentService:       service.Content,
		FeedService:          service.Feed,
		SubtitleService:      service.Subtitle,
		TablesService:        service.Tables,
		Cfg:                  config,
		Validate:             NewValidator(),
	}
}
