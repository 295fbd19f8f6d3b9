package handlers

import (
	"errors"
	"net/http"

	"clover/internal/ai"
	"clover/internal/apperr"
	"clover/internal/models"
	"clover/internal/service"
	"clover/internal/stream"
)

type contentGenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=100000"`
	Type   string `json:"type" validate:"required"`
}

type contentOrganizeRequest struct {
	Content string `json:"content" validate:"required,max=100000"`
	Action  string `json:"action" validate:"required"`
}

type contentRewriteRequest struct {
	URL              string   `json:"url" validate:"omitempty,max=500"`
	URLs             []string `json:"urls" validate:"omitempty,max=10,dive,max=500"`
	OutputLanguage   string   `json:"outputLanguage" validate:"max=50"`
	Style            string   `json:"style" validate:"max=50"`
	CustomStyle      string   `json:"customStyle" validate:"max=1000"`
	TargetWordCount  int      `json:"targetWordCount" validate:"min=0,max=10000"`
	GeoOptimized     bool     `json:"geoOptimized"`
	CustomEnding     bool     `json:"customEnding"`
	CustomEndingText string   `json:"customEndingText" validate:"max=2000"`
	IsBatch          bool     `json:"isBatch"`
}

type analyzeImageRequest struct {
	ImageURL    string `json:"imageUrl" validate:"max=500"`
	ImageBase64 string `json:"imageBase64"`
}

type rssFetchRequest struct {
	URL string `json:"url" validate:"required,max=500"`
}

type searchRequest struct {
	Query      string `json:"query" validate:"required,max=500"`
	MaxResults int    `json:"maxResults" validate:"min=0,max=20"`
}

type subtitleRequest struct {
	ConversionID string   `json:"conversionId" validate:"required,max=200"`
	SourceURL    string   `json:"sourceUrl" validate:"max=500"`
	Languages    []string `json:"languages" validate:"max=10"`
}

// ContentGenerate streams the completion as event-stream deltas. Upstream
// failures before the first delta are answered with a plain JSON status.
func (h *Handlers) ContentGenerate(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req contentGenerateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	contentType, err := models.ParseContentType(req.Type)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sw, err := stream.NewWriter(w)
	if err != nil {
		logRequestError(r, err).Error("starting content stream")
		WriteError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	if err := h.ContentService.Stream(r.Context(), contentType, req.Prompt, sw.WriteDelta); err != nil {
		if !sw.Started() {
			writeServiceError(w, r, err)
			return
		}
		logRequestError(r, err).Warn("content stream interrupted")
		return
	}

	if err := sw.Done(); err != nil {
		logRequestError(r, err).Warn("finishing content stream")
	}
}

func (h *Handlers) ContentOrganize(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req contentOrganizeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	action, err := ai.ParseOrganizeAction(req.Action)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.ContentService.Organize(r.Context(), userID, req.Content, action)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

// ContentRewrite accepts a single url or a list. Per-item failures are part
// of the 200 answer.
func (h *Handlers) ContentRewrite(w http.ResponseWriter, r *http.Request) {
	var req contentRewriteRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	urls := req.URLs
	if len(urls) == 0 && req.URL != "" {
		urls = []string{req.URL}
	}
	if len(urls) == 0 {
		WriteError(w, "url or urls is required", http.StatusBadRequest)
		return
	}
	if len(urls) > service.MaxRewriteURLs {
		WriteError(w, "at most 10 urls per request", http.StatusBadRequest)
		return
	}

	result := h.ContentService.Rewrite(r.Context(), service.RewriteInput{
		URLs: urls,
		Options: ai.RewriteOptions{
			OutputLanguage:   req.OutputLanguage,
			Style:            req.Style,
			CustomStyle:      req.CustomStyle,
			TargetWordCount:  req.TargetWordCount,
			GeoOptimized:     req.GeoOptimized,
			CustomEnding:     req.CustomEnding,
			CustomEndingText: req.CustomEndingText,
		},
		IsBatch: req.IsBatch,
	})

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req analyzeImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if req.ImageURL == "" && req.ImageBase64 == "" {
		WriteError(w, "imageUrl or imageBase64 is required", http.StatusBadRequest)
		return
	}

	analysis, err := h.ContentService.AnalyzeImage(r.Context(), req.ImageURL, req.ImageBase64)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, analysis, http.StatusOK)
}

func (h *Handlers) RSSFetch(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req rssFetchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	feed, err := h.FeedService.Fetch(r.Context(), req.URL)
	if err != nil {
		var verr *apperr.ValidationError
		if errors.As(err, &verr) {
			writeServiceError(w, r, err)
			return
		}
		logRequestError(r, err).Error("fetching rss feed")
		WriteError(w, "failed to fetch RSS feed", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, feed, http.StatusOK)
}

// Search returns a handler for one platform's hypothetical search.
func (h *Handlers) Search(platform string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}

		result, err := h.ContentService.Search(r.Context(), platform, req.Query, req.MaxResults)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeSuccess(w, result, http.StatusOK)
	}
}

func (h *Handlers) AudioToSubtitle(w http.ResponseWriter, r *http.Request) {
	var req subtitleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.SubtitleService.Generate(r.Context(), service.SubtitleRequest{
		ConversionID: req.ConversionID,
		SourceURL:    req.SourceURL,
		Languages:    req.Languages,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}
