package service

import (
	"context"
	"io"
	"time"

	"clover/internal/article"
	"clover/internal/models"
	"clover/internal/repository"
	"clover/internal/uploadpost"
	"clover/internal/voice"
	"clover/internal/wordpress"

	"github.com/stretchr/testify/mock"
)

type MockPromptRepository struct {
	mock.Mock
}

func (m *MockPromptRepository) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) GetByID(ctx context.Context, userID, id string) (*models.Prompt, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *MockPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *MockPromptRepository) ToggleFavorite(ctx context.Context, userID, id string) (*models.Prompt, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockScheduledPostRepository struct {
	mock.Mock
}

func (m *MockScheduledPostRepository) List(ctx context.Context, userID string) ([]models.ScheduledPost, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostRepository) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]models.ScheduledPost, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostRepository) GetByID(ctx context.Context, userID, id string) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostRepository) Create(ctx context.Context, post *models.ScheduledPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockScheduledPostRepository) Update(ctx context.Context, post *models.ScheduledPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockScheduledPostRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockScheduledPostRepository) ProcessDue(ctx context.Context, now time.Time, limit int, fn repository.DueFunc) (int, error) {
	args := m.Called(ctx, now, limit, fn)
	return args.Int(0), args.Error(1)
}

type MockPublishingRepository struct {
	mock.Mock
}

func (m *MockPublishingRepository) List(ctx context.Context, userID string) ([]models.PublishingRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.PublishingRecord), args.Error(1)
}

func (m *MockPublishingRepository) Create(ctx context.Context, record *models.PublishingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPublishingRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockWordPressRepository struct {
	mock.Mock
}

func (m *MockWordPressRepository) GetByUserID(ctx context.Context, userID string) (*models.WordPressConnection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordPressConnection), args.Error(1)
}

func (m *MockWordPressRepository) Upsert(ctx context.Context, conn *models.WordPressConnection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockWordPressRepository) SetConnected(ctx context.Context, userID string, connected bool) error {
	args := m.Called(ctx, userID, connected)
	return args.Error(0)
}

type MockUploadPostRepository struct {
	mock.Mock
}

func (m *MockUploadPostRepository) GetByUserID(ctx context.Context, userID string) (*models.UploadPostSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadPostSettings), args.Error(1)
}

func (m *MockUploadPostRepository) Upsert(ctx context.Context, settings *models.UploadPostSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Active(ctx context.Context, userID string) (*models.UserSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) List(ctx context.Context, userID string) ([]models.UserSubscription, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.UserSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Subscribe(ctx context.Context, sub *models.UserSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type MockGenerationLogRepository struct {
	mock.Mock
}

func (m *MockGenerationLogRepository) List(ctx context.Context, userID string, limit int) ([]models.AIGenerationLog, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]models.AIGenerationLog), args.Error(1)
}

func (m *MockGenerationLogRepository) Create(ctx context.Context, log *models.AIGenerationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type MockVoiceRepository struct {
	mock.Mock
}

func (m *MockVoiceRepository) List(ctx context.Context, userID string) ([]models.VoiceGeneration, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.VoiceGeneration), args.Error(1)
}

func (m *MockVoiceRepository) Create(ctx context.Context, v *models.VoiceGeneration) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVoiceRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, userID, folder, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, userID, folder, fileName, file, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) UploadBytes(ctx context.Context, userID, folder, fileName string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, userID, folder, fileName, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) PresignedURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) Stream(ctx context.Context, system, user string, onDelta func(string) error) error {
	args := m.Called(ctx, system, user, onDelta)
	return args.Error(0)
}

func (m *MockTextGenerator) Describe(ctx context.Context, prompt, imageURL string) (string, error) {
	args := m.Called(ctx, prompt, imageURL)
	return args.String(0), args.Error(1)
}

type MockArticleFetcher struct {
	mock.Mock
}

func (m *MockArticleFetcher) Fetch(ctx context.Context, url string) (*article.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*article.Article), args.Error(1)
}

type MockSpeaker struct {
	mock.Mock
}

func (m *MockSpeaker) Synthesize(ctx context.Context, r voice.SpeechRequest) (*voice.Speech, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voice.Speech), args.Error(1)
}

func (m *MockSpeaker) Clone(ctx context.Context, r voice.CloneRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockWordPressAPI struct {
	mock.Mock
}

func (m *MockWordPressAPI) Me(ctx context.Context) (*wordpress.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.User), args.Error(1)
}

func (m *MockWordPressAPI) CreatePost(ctx context.Context, p wordpress.NewPost) (*wordpress.Post, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Post), args.Error(1)
}

func (m *MockWordPressAPI) UploadMediaFromURL(ctx context.Context, imageURL string) (*wordpress.Media, error) {
	args := m.Called(ctx, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Media), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, p uploadpost.Post) (*uploadpost.Result, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploadpost.Result), args.Error(1)
}
