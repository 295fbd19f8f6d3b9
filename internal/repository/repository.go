package repository

import (
	"context"
	"time"

	"clover/internal/models"

	"github.com/jmoiron/sqlx"
)

// Every method is scoped by the owner id it receives; callers pass the id of
// the verified caller, never one taken from a request body.

type PromptRepository interface {
	List(ctx context.Context, userID string) ([]models.Prompt, error)
	GetByID(ctx context.Context, userID, id string) (*models.Prompt, error)
	Create(ctx context.Context, prompt *models.Prompt) error
	Update(ctx context.Context, prompt *models.Prompt) error
	ToggleFavorite(ctx context.Context, userID, id string) (*models.Prompt, error)
	Delete(ctx context.Context, userID, id string) error
}

type MediaRepository interface {
	List(ctx context.Context, userID string) ([]models.MediaFile, error)
	GetByID(ctx context.Context, userID, id string) (*models.MediaFile, error)
	Create(ctx context.Context, file *models.MediaFile) error
	Delete(ctx context.Context, userID, id string) error
}

type ImageRepository interface {
	List(ctx context.Context, userID string) ([]models.GeneratedImage, error)
	Create(ctx context.Context, image *models.GeneratedImage) error
	ToggleFavorite(ctx context.Context, userID, id string) (*models.GeneratedImage, error)
	Delete(ctx context.Context, userID, id string) error
}

type VoiceRepository interface {
	List(ctx context.Context, userID string) ([]models.VoiceGeneration, error)
	Create(ctx context.Context, voice *models.VoiceGeneration) error
	Delete(ctx context.Context, userID, id string) error
}

// DueFunc publishes one claimed post and returns its resulting status and error text.
type DueFunc func(ctx context.Context, post models.ScheduledPost) (models.PostStatus, string)

type ScheduledPostRepository interface {
	List(ctx context.Context, userID string) ([]models.ScheduledPost, error)
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]models.ScheduledPost, error)
	GetByID(ctx context.Context, userID, id string) (*models.ScheduledPost, error)
	Create(ctx context.Context, post *models.ScheduledPost) error
	Update(ctx context.Context, post *models.ScheduledPost) error
	Delete(ctx context.Context, userID, id string) error
	ProcessDue(ctx context.Context, now time.Time, limit int, fn DueFunc) (int, error)
}

type PublishingRepository interface {
	List(ctx context.Context, userID string) ([]models.PublishingRecord, error)
	Create(ctx context.Context, record *models.PublishingRecord) error
	Delete(ctx context.Context, userID, id string) error
}

type WordPressRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.WordPressConnection, error)
	Upsert(ctx context.Context, conn *models.WordPressConnection) error
	SetConnected(ctx context.Context, userID string, connected bool) error
}

type UploadPostRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UploadPostSettings, error)
	Upsert(ctx context.Context, settings *models.UploadPostSettings) error
}

type PointsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserPoints, error)
	Add(ctx context.Context, userID string, amount int64) (*models.UserPoints, error)
}

type SubscriptionRepository interface {
	Active(ctx context.Context, userID string) (*models.UserSubscription, error)
	List(ctx context.Context, userID string) ([]models.UserSubscription, error)
	Subscribe(ctx context.Context, sub *models.UserSubscription) error
}

type GenerationLogRepository interface {
	List(ctx context.Context, userID string, limit int) ([]models.AIGenerationLog, error)
	Create(ctx context.Context, log *models.AIGenerationLog) error
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	Prompt        PromptRepository
	Media         MediaRepository
	Image         ImageRepository
	Voice         VoiceRepository
	ScheduledPost ScheduledPostRepository
	Publishing    PublishingRepository
	WordPress     WordPressRepository
	UploadPost    UploadPostRepository
	Points        PointsRepository
	Subscription  SubscriptionRepository
	GenerationLog GenerationLogRepository
	Tables        TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Prompt:        NewPromptRepository(db),
		Media:         NewMediaRepository(db),
		Image:         NewImageRepository(db),
		Voice:         NewVoiceRepository(db),
		ScheduledPost: NewScheduledPostRepository(db),
		Publishing:    NewPublishingRepository(db),
		WordPress:     NewWordPressRepository(db),
		UploadPost:    NewUploadPostRepository(db),
		Points:        NewPointsRepository(db),
		Subscription:  NewSubscriptionRepository(db),
		GenerationLog: NewGenerationLogRepository(db),
		Tables:        NewTablesRepository(db),
	}
}
