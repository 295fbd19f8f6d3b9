package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"clover/internal/ai"
	"clover/internal/apperr"
	"clover/internal/article"
	"clover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContentFixture() (*MockTextGenerator, *MockArticleFetcher, *MockGenerationLogRepository, ContentService) {
	gen := new(MockTextGenerator)
	articles := new(MockArticleFetcher)
	logRepo := new(MockGenerationLogRepository)
	return gen, articles, logRepo, NewContentService(gen, articles, NewGenerationLogService(logRepo))
}

func TestContentService_OrganizeLogsGeneration(t *testing.T) {
	gen, _, logRepo, svc := newContentFixture()
	gen.On("Complete", mock.Anything, ai.OrganizeSystemPrompt(), mock.Anything).Return("short version", nil)
	logRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *models.AIGenerationLog) bool {
		return l.UserID == testUserID && l.ToolType == "content-organize" && l.Result == "short version"
	})).Return(nil)

	res, err := svc.Organize(context.Background(), testUserID, "a long text", ai.ActionSummarize)

	require.NoError(t, err)
	assert.Equal(t, "short version", res.Result)
	assert.Equal(t, ai.ActionSummarize, res.Action)
	logRepo.AssertExpectations(t)
}

func TestContentService_OrganizeRateLimited(t *testing.T) {
	gen, _, logRepo, svc := newContentFixture()
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("ai gateway: %w", apperr.ErrRateLimited))

	_, err := svc.Organize(context.Background(), testUserID, "text", ai.ActionExpand)

	assert.ErrorIs(t, err, apperr.ErrRateLimited)
	logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContentService_RewritePerItemStatus(t *testing.T) {
	gen, articles, _, svc := newContentFixture()

	articles.On("Fetch", mock.Anything, "https://ok.example.com/a").Return(&article.Article{Title: "A", Text: "alpha"}, nil)
	articles.On("Fetch", mock.Anything, "https://busy.example.com/b").Return(&article.Article{Title: "B", Text: "beta"}, nil)
	articles.On("Fetch", mock.Anything, "https://broke.example.com/c").Return(&article.Article{Title: "C", Text: "gamma"}, nil)
	articles.On("Fetch", mock.Anything, "https://gone.example.com/d").Return(nil, errors.New("status 404"))

	gen.On("Complete", mock.Anything, mock.Anything, ai.RewriteUserPrompt("A", "alpha")).Return("rewritten", nil)
	gen.On("Complete", mock.Anything, mock.Anything, ai.RewriteUserPrompt("B", "beta")).
		Return("", fmt.Errorf("ai gateway: %w", apperr.ErrRateLimited))
	gen.On("Complete", mock.Anything, mock.Anything, ai.RewriteUserPrompt("C", "gamma")).
		Return("", fmt.Errorf("ai gateway: %w", apperr.ErrQuotaExhausted))

	res := svc.Rewrite(context.Background(), RewriteInput{
		URLs: []string{
			"https://ok.example.com/a",
			"https://busy.example.com/b",
			"https://broke.example.com/c",
			"https://gone.example.com/d",
			"http://127.0.0.1/admin",
		},
	})

	require.Len(t, res.Results, 5)
	assert.True(t, res.Success)
	assert.True(t, res.IsBatch)

	want := []RewriteStatus{RewriteSuccess, RewriteRateLimited, RewriteCreditsExhausted, RewriteError, RewriteError}
	for i, item := range res.Results {
		assert.Equal(t, want[i], item.Status, item.URL)
	}
	assert.Equal(t, "rewritten", res.Results[0].Content)
	assert.Equal(t, "A", res.Results[0].OriginalTitle)
	assert.Contains(t, res.Results[3].Error, "404")
	articles.AssertNotCalled(t, "Fetch", mock.Anything, "http://127.0.0.1/admin")
}

func TestContentService_AnalyzeImage(t *testing.T) {
	t.Run("json answer", func(t *testing.T) {
		gen, _, _, svc := newContentFixture()
		gen.On("Describe", mock.Anything, ai.AnalyzeImagePrompt(), "data:image/jpeg;base64,AAAA").
			Return("```json\n{\"subjectType\":\"animal\",\"description\":\"a cat\"}\n```", nil)

		res, err := svc.AnalyzeImage(context.Background(), "", "AAAA")

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.False(t, res.ParseError)
		assert.Equal(t, "animal", res.Analysis["subjectType"])
	})

	t.Run("free text answer", func(t *testing.T) {
		gen, _, _, svc := newContentFixture()
		gen.On("Describe", mock.Anything, mock.Anything, "https://cdn.example.com/cat.png").Return("A cat on a sofa.", nil)

		res, err := svc.AnalyzeImage(context.Background(), "https://cdn.example.com/cat.png", "")

		require.NoError(t, err)
		assert.True(t, res.ParseError)
		assert.Equal(t, "A cat on a sofa.", res.RawAnalysis)
		assert.Nil(t, res.Analysis)
	})

	t.Run("no image", func(t *testing.T) {
		_, _, _, svc := newContentFixture()

		_, err := svc.AnalyzeImage(context.Background(), "", "")

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestContentService_SearchIsHypothetical(t *testing.T) {
	gen, _, _, svc := newContentFixture()
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`[{"title":"one"},{"title":"two"},{"title":"three"}]`, nil)

	res, err := svc.Search(context.Background(), "YouTube", " go tutorials ", 2)

	require.NoError(t, err)
	assert.True(t, res.Hypothetical)
	assert.Equal(t, "go tutorials", res.Query)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "one", res.Results[0]["title"])
}

func TestContentService_SearchUnparseable(t *testing.T) {
	gen, _, _, svc := newContentFixture()
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("sorry, I cannot", nil)

	_, err := svc.Search(context.Background(), "Xiaohongshu", "coffee", 5)

	assert.Error(t, err)
}
