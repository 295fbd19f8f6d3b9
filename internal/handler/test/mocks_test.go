package test

import (
	"context"
	"errors"
	"io"
	"time"

	"clover/internal/ai"
	"clover/internal/feed"
	"clover/internal/models"
	"clover/internal/service"

	"github.com/stretchr/testify/mock"
)

// fakeVerifier accepts "token-<user>" as the bearer token of <user>.
type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (string, error) {
	if len(token) > len("token-") && token[:len("token-")] == "token-" {
		return token[len("token-"):], nil
	}
	return "", errors.New("invalid token")
}

type MockPromptService struct {
	mock.Mock
}

func (m *MockPromptService) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Prompt), args.Error(1)
}

func (m *MockPromptService) Create(ctx context.Context, userID string, in service.PromptInput) (*models.Prompt, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptService) Update(ctx context.Context, userID, id string, in service.PromptUpdate) (*models.Prompt, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptService) ToggleFavorite(ctx context.Context, userID, id string) (*models.Prompt, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) List(ctx context.Context, userID string) ([]models.MediaFile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaFile), args.Error(1)
}

func (m *MockMediaService) Upload(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (*models.MediaFile, error) {
	args := m.Called(ctx, userID, fileName, contentType, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaFile), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockMediaService) URL(ctx context.Context, userID, id string) (string, error) {
	args := m.Called(ctx, userID, id)
	return args.String(0), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) List(ctx context.Context, userID string) ([]models.GeneratedImage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GeneratedImage), args.Error(1)
}

func (m *MockImageService) Generate(ctx context.Context, userID string, in service.GenerateImageInput) (*models.GeneratedImage, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeneratedImage), args.Error(1)
}

func (m *MockImageService) ToggleFavorite(ctx context.Context, userID, id string) (*models.GeneratedImage, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeneratedImage), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockImageService) Sticker(ctx context.Context, text, style string) (*service.Sticker, error) {
	args := m.Called(ctx, text, style)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Sticker), args.Error(1)
}

type MockVoiceService struct {
	mock.Mock
}

func (m *MockVoiceService) History(ctx context.Context, userID string) ([]models.VoiceGeneration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VoiceGeneration), args.Error(1)
}

func (m *MockVoiceService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockVoiceService) Generate(ctx context.Context, userID string, in service.GenerateVoiceInput) (*service.VoiceResult, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VoiceResult), args.Error(1)
}

func (m *MockVoiceService) Clone(ctx context.Context, userID string, in service.CloneVoiceInput) (string, error) {
	args := m.Called(ctx, userID, in)
	return args.String(0), args.Error(1)
}

type MockScheduledPostService struct {
	mock.Mock
}

func (m *MockScheduledPostService) List(ctx context.Context, userID string) ([]models.ScheduledPost, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostService) Create(ctx context.Context, userID string, in service.ScheduledPostInput) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostService) Update(ctx context.Context, userID, id string, in service.ScheduledPostUpdate) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockScheduledPostService) Calendar(ctx context.Context, userID string, anchor time.Time) (*service.CalendarMonth, error) {
	args := m.Called(ctx, userID, anchor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalendarMonth), args.Error(1)
}

type MockWordPressService struct {
	mock.Mock
}

func (m *MockWordPressService) Get(ctx context.Context, userID string) (*service.WordPressConnectionView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WordPressConnectionView), args.Error(1)
}

func (m *MockWordPressService) Save(ctx context.Context, userID string, in service.WordPressCredentials) (*service.WordPressConnectionView, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WordPressConnectionView), args.Error(1)
}

func (m *MockWordPressService) Test(ctx context.Context, in service.WordPressCredentials) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockWordPressService) TestStored(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockWordPressService) Publish(ctx context.Context, userID string, in service.WordPressPublishInput) (*service.WordPressPublishResult, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WordPressPublishResult), args.Error(1)
}

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Plans() []models.Plan {
	args := m.Called()
	return args.Get(0).([]models.Plan)
}

func (m *MockSubscriptionService) Active(ctx context.Context, userID string) (*models.UserSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscription), args.Error(1)
}

func (m *MockSubscriptionService) History(ctx context.Context, userID string) ([]models.UserSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSubscription), args.Error(1)
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, userID, planName string, period models.BillingPeriod) (*models.UserSubscription, error) {
	args := m.Called(ctx, userID, planName, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscription), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

// Stream replays the deltas configured as the first return value before
// returning the configured error.
func (m *MockContentService) Stream(ctx context.Context, contentType models.ContentType, prompt string, onDelta func(string) error) error {
	args := m.Called(ctx, contentType, prompt)
	if deltas, ok := args.Get(0).([]string); ok {
		for _, d := range deltas {
			if err := onDelta(d); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

func (m *MockContentService) Organize(ctx context.Context, userID, content string, action ai.OrganizeAction) (*service.OrganizeResult, error) {
	args := m.Called(ctx, userID, content, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrganizeResult), args.Error(1)
}

func (m *MockContentService) Rewrite(ctx context.Context, in service.RewriteInput) *service.RewriteResult {
	args := m.Called(ctx, in)
	return args.Get(0).(*service.RewriteResult)
}

func (m *MockContentService) AnalyzeImage(ctx context.Context, imageURL, imageBase64 string) (*service.ImageAnalysis, error) {
	args := m.Called(ctx, imageURL, imageBase64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageAnalysis), args.Error(1)
}

func (m *MockContentService) Search(ctx context.Context, platform, query string, maxResults int) (*service.SearchResult, error) {
	args := m.Called(ctx, platform, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Fetch(ctx context.Context, url string) (*feed.Feed, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feed.Feed), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
