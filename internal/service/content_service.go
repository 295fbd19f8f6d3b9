package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"clover/internal/ai"
	"clover/internal/apperr"
	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/safeurl"
)

const (
	MaxRewriteURLs   = 10
	defaultSearchMax = 10
	maxSearchResults = 20
)

type OrganizeResult struct {
	Result string            `json:"result"`
	Action ai.OrganizeAction `json:"action"`
}

type RewriteStatus string

const (
	RewriteSuccess          RewriteStatus = "success"
	RewriteRateLimited      RewriteStatus = "rate_limited"
	RewriteCreditsExhausted RewriteStatus = "credits_exhausted"
	RewriteError            RewriteStatus = "error"
)

type RewriteInput struct {
	URLs    []string
	Options ai.RewriteOptions
	IsBatch bool
}

type RewriteItem struct {
	URL           string        `json:"url"`
	Status        RewriteStatus `json:"status"`
	OriginalTitle string        `json:"originalTitle,omitempty"`
	Content       string        `json:"content,omitempty"`
	Error         string        `json:"error,omitempty"`
}

type RewriteResult struct {
	Success bool          `json:"success"`
	Results []RewriteItem `json:"results"`
	IsBatch bool          `json:"isBatch"`
}

// ImageAnalysis carries either the decoded description or, when the model
// did not answer with JSON, its raw text.
type ImageAnalysis struct {
	Success     bool                   `json:"success"`
	Analysis    map[string]interface{} `json:"analysis,omitempty"`
	RawAnalysis string                 `json:"rawAnalysis,omitempty"`
	ParseError  bool                   `json:"parseError,omitempty"`
}

type SearchResult struct {
	Results      []map[string]interface{} `json:"results"`
	Query        string                   `json:"query"`
	Hypothetical bool                     `json:"hypothetical"`
}

type ContentService interface {
	Stream(ctx context.Context, contentType models.ContentType, prompt string, onDelta func(string) error) error
	Organize(ctx context.Context, userID, content string, action ai.OrganizeAction) (*OrganizeResult, error)
	Rewrite(ctx context.Context, in RewriteInput) *RewriteResult
	AnalyzeImage(ctx context.Context, imageURL, imageBase64 string) (*ImageAnalysis, error)
	Search(ctx context.Context, platform, query string, maxResults int) (*SearchResult, error)
}

type contentService struct {
	ai       TextGenerator
	articles ArticleFetcher
	logs     GenerationLogService
}

func NewContentService(gen TextGenerator, articles ArticleFetcher, logs GenerationLogService) ContentService {
	return &contentService{ai: gen, articles: articles, logs: logs}
}

func (s *contentService) Stream(ctx context.Context, contentType models.ContentType, prompt string, onDelta func(string) error) error {
	return s.ai.Stream(ctx, ai.ContentSystemPrompt(contentType), prompt, onDelta)
}

func (s *contentService) Organize(ctx context.Context, userID, content string, action ai.OrganizeAction) (*OrganizeResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("content", "content is required")
	}

	user := action.Instruction() + "\n\n" + content
	result, err := s.ai.Complete(ctx, ai.OrganizeSystemPrompt(), user)
	if err != nil {
		return nil, err
	}

	if _, err := s.logs.Create(ctx, userID, content, result, "content-organize"); err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("saving organize log")
	}

	return &OrganizeResult{Result: result, Action: action}, nil
}

// Rewrite handles each URL on its own. Failures are reported per item with
// the upstream message and never fail the whole request.
func (s *contentService) Rewrite(ctx context.Context, in RewriteInput) *RewriteResult {
	system := ai.RewriteSystemPrompt(in.Options)
	out := &RewriteResult{Results: make([]RewriteItem, 0, len(in.URLs)), IsBatch: in.IsBatch || len(in.URLs) > 1}

	for _, raw := range in.URLs {
		item := s.rewriteOne(ctx, system, raw)
		if item.Status == RewriteSuccess {
			out.Success = true
		}
		out.Results = append(out.Results, item)
	}

	return out
}

func (s *contentService) rewriteOne(ctx context.Context, system, raw string) RewriteItem {
	item := RewriteItem{URL: raw}

	u, err := safeurl.Validate(raw)
	if err != nil {
		item.Status, item.Error = RewriteError, err.Error()
		return item
	}

	article, err := s.articles.Fetch(ctx, u)
	if err != nil {
		item.Status, item.Error = rewriteStatus(err), err.Error()
		return item
	}
	item.OriginalTitle = article.Title

	text, err := s.ai.Complete(ctx, system, ai.RewriteUserPrompt(article.Title, article.Text))
	if err != nil {
		logger.WithError(err).WithFields(logger.Fields{"url": u}).Warn("rewrite failed")
		item.Status, item.Error = rewriteStatus(err), err.Error()
		return item
	}

	item.Status, item.Content = RewriteSuccess, text
	return item
}

func rewriteStatus(err error) RewriteStatus {
	switch {
	case errors.Is(err, apperr.ErrRateLimited):
		return RewriteRateLimited
	case errors.Is(err, apperr.ErrQuotaExhausted):
		return RewriteCreditsExhausted
	}
	return RewriteError
}

func (s *contentService) AnalyzeImage(ctx context.Context, imageURL, imageBase64 string) (*ImageAnalysis, error) {
	image, err := imageSource(imageURL, imageBase64)
	if err != nil {
		return nil, err
	}

	text, err := s.ai.Describe(ctx, ai.AnalyzeImagePrompt(), image)
	if err != nil {
		return nil, err
	}

	var analysis map[string]interface{}
	if err := ai.DecodeJSON(text, &analysis); err != nil {
		return &ImageAnalysis{Success: true, RawAnalysis: text, ParseError: true}, nil
	}

	return &ImageAnalysis{Success: true, Analysis: analysis}, nil
}

// imageSource prefers inline data. Remote URLs are handed to the model
// provider, which does the fetching.
func imageSource(imageURL, imageBase64 string) (string, error) {
	if b := strings.TrimSpace(imageBase64); b != "" {
		if strings.HasPrefix(b, "data:") {
			return b, nil
		}
		return "data:image/jpeg;base64," + b, nil
	}

	if imageURL == "" {
		return "", apperr.Invalid("imageUrl", "imageUrl or imageBase64 is required")
	}

	u, err := safeurl.Validate(imageURL)
	if err != nil {
		return "", apperr.Invalid("imageUrl", "%s", err.Error())
	}
	return u, nil
}

// Search returns results the model imagines for the query. They are always
// marked hypothetical.
func (s *contentService) Search(ctx context.Context, platform, query string, maxResults int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Invalid("query", "query is required")
	}
	if maxResults <= 0 {
		maxResults = defaultSearchMax
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	system, user := ai.SearchPrompt(platform, query, maxResults)
	text, err := s.ai.Complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	results := []map[string]interface{}{}
	if err := ai.DecodeJSON(text, &results); err != nil {
		var wrapped struct {
			Results []map[string]interface{} `json:"results"`
		}
		if json.Unmarshal([]byte(ai.StripFences(text)), &wrapped) != nil || wrapped.Results == nil {
			return nil, fmt.Errorf("parsing %s search results: %w", platform, err)
		}
		results = wrapped.Results
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return &SearchResult{Results: results, Query: query, Hypothetical: true}, nil
}
