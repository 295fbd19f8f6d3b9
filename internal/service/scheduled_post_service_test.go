package service

import (
	"context"
	"testing"
	"time"

	"clover/internal/apperr"
	"clover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScheduledPostService_CreateDefaultsToScheduled(t *testing.T) {
	repo := new(MockScheduledPostRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.ScheduledPost) bool {
		return p.Status == models.PostScheduled && p.UserID == testUserID
	})).Return(nil)

	svc := NewScheduledPostService(repo)
	post, err := svc.Create(context.Background(), testUserID, ScheduledPostInput{
		Title:       "Launch",
		Content:     "We are live",
		Platform:    models.PlatformLinkedIn,
		ScheduledAt: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PostScheduled, post.Status)
	repo.AssertExpectations(t)
}

func TestScheduledPostService_CreateValidation(t *testing.T) {
	svc := NewScheduledPostService(new(MockScheduledPostRepository))

	_, err := svc.Create(context.Background(), testUserID, ScheduledPostInput{
		Content:     "body",
		Platform:    models.PlatformTwitter,
		ScheduledAt: time.Now(),
	})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestScheduledPostService_CreateInitialStatus(t *testing.T) {
	tests := []struct {
		status  models.PostStatus
		allowed bool
	}{
		{models.PostDraft, true},
		{models.PostScheduled, true},
		{models.PostPublished, false},
		{models.PostFailed, false},
		{models.PostPublishing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			repo := new(MockScheduledPostRepository)
			if tt.allowed {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.ScheduledPost")).Return(nil)
			}

			post, err := NewScheduledPostService(repo).Create(context.Background(), testUserID, ScheduledPostInput{
				Title:       "Launch",
				Content:     "We are live",
				Platform:    models.PlatformTwitter,
				ScheduledAt: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
				Status:      tt.status,
			})

			if !tt.allowed {
				var verr *apperr.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "status", verr.Field)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, post.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestScheduledPostService_UpdateRejectsClaimedPost(t *testing.T) {
	repo := new(MockScheduledPostRepository)
	repo.On("GetByID", mock.Anything, testUserID, "post1").
		Return(&models.ScheduledPost{ID: "post1", UserID: testUserID, Status: models.PostPublishing}, nil)

	title := "Renamed"
	_, err := NewScheduledPostService(repo).Update(context.Background(), testUserID, "post1", ScheduledPostUpdate{Title: &title})

	assert.ErrorIs(t, err, apperr.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestScheduledPostService_UpdateTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.PostStatus
		to      models.PostStatus
		allowed bool
	}{
		{"draft to scheduled", models.PostDraft, models.PostScheduled, true},
		{"scheduled to published", models.PostScheduled, models.PostPublished, true},
		{"scheduled to failed", models.PostScheduled, models.PostFailed, true},
		{"failed to scheduled", models.PostFailed, models.PostScheduled, true},
		{"same status", models.PostPublished, models.PostPublished, true},
		{"published to draft", models.PostPublished, models.PostDraft, false},
		{"draft to published", models.PostDraft, models.PostPublished, false},
		{"failed to published", models.PostFailed, models.PostPublished, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockScheduledPostRepository)
			repo.On("GetByID", mock.Anything, testUserID, "post1").
				Return(&models.ScheduledPost{ID: "post1", UserID: testUserID, Status: tt.from, LastError: "boom"}, nil)
			if tt.allowed {
				repo.On("Update", mock.Anything, mock.AnythingOfType("*models.ScheduledPost")).Return(nil)
			}

			to := tt.to
			post, err := NewScheduledPostService(repo).Update(context.Background(), testUserID, "post1", ScheduledPostUpdate{Status: &to})

			if !tt.allowed {
				var verr *apperr.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "status", verr.Field)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, post.Status)
			if tt.from == models.PostFailed && tt.to == models.PostScheduled {
				assert.Empty(t, post.LastError)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestScheduledPostService_Calendar(t *testing.T) {
	repo := new(MockScheduledPostRepository)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	repo.On("ListBetween", mock.Anything, testUserID, from, to).Return([]models.ScheduledPost{
		{ID: "a", ScheduledAt: time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)},
		{ID: "b", ScheduledAt: time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)},
	}, nil)

	month, err := NewScheduledPostService(repo).Calendar(context.Background(), testUserID, time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2024-06", month.Month)
	assert.Equal(t, 6, month.LeadingBlanks) // 2024-06-01 is a Saturday
	require.Len(t, month.Days, 30)
	require.Len(t, month.Days[14].Posts, 1)
	assert.Equal(t, "a", month.Days[14].Posts[0].ID)
	assert.Equal(t, "b", month.Days[15].Posts[0].ID)
	repo.AssertExpectations(t)
}
