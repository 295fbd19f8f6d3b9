package handlers

import (
	"net/http"

	"clover/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter mounts the resource API under /api and the integration functions
// under /functions/v1. A nil limiter disables rate limiting.
func NewRouter(h *Handlers, auth middleware.TokenVerifier, limiter *middleware.RateLimiter) http.Handler {
	r := mux.NewRouter()

	limited := func(fn http.HandlerFunc) http.Handler {
		if limiter == nil {
			return fn
		}
		return limiter.Middleware(fn)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Public functions go first so the authed subrouter below never sees them.
	r.Handle("/functions/v1/content-rewrite", limited(h.ContentRewrite)).Methods(http.MethodPost)
	r.Handle("/functions/v1/sticker-generate", limited(h.StickerGenerate)).Methods(http.MethodPost)
	r.Handle("/functions/v1/youtube-search", limited(h.Search("youtube"))).Methods(http.MethodPost)
	r.Handle("/functions/v1/audio-to-subtitle", limited(h.AudioToSubtitle)).Methods(http.MethodPost)

	requireAuth := mux.MiddlewareFunc(middleware.AuthMiddleware(auth))

	fn := r.PathPrefix("/functions/v1").Subrouter()
	fn.Use(requireAuth)
	fn.Handle("/content-generate", limited(h.ContentGenerate)).Methods(http.MethodPost)
	fn.Handle("/content-organize", limited(h.ContentOrganize)).Methods(http.MethodPost)
	fn.Handle("/analyze-image", limited(h.AnalyzeImage)).Methods(http.MethodPost)
	fn.Handle("/xiaohongshu-search", limited(h.Search("xiaohongshu"))).Methods(http.MethodPost)
	fn.Handle("/voice-generate", limited(h.VoiceGenerate)).Methods(http.MethodPost)
	fn.Handle("/voice-clone", limited(h.VoiceClone)).Methods(http.MethodPost)
	fn.HandleFunc("/rss-fetch", h.RSSFetch).Methods(http.MethodPost)
	fn.HandleFunc("/wordpress-save", h.WordPressSave).Methods(http.MethodPost)
	fn.HandleFunc("/wordpress-test", h.WordPressTest).Methods(http.MethodPost)
	fn.HandleFunc("/wordpress-test-stored", h.WordPressTestStored).Methods(http.MethodPost)
	fn.HandleFunc("/wordpress-publish", h.WordPressPublish).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(requireAuth)

	api.HandleFunc("/prompts", h.ListPrompts).Methods(http.MethodGet)
	api.HandleFunc("/prompts", h.CreatePrompt).Methods(http.MethodPost)
	api.HandleFunc("/prompts/{id}", h.UpdatePrompt).Methods(http.MethodPut)
	api.HandleFunc("/prompts/{id}", h.DeletePrompt).Methods(http.MethodDelete)
	api.HandleFunc("/prompts/{id}/favorite", h.TogglePromptFavorite).Methods(http.MethodPost)

	api.HandleFunc("/media", h.ListMedia).Methods(http.MethodGet)
	api.HandleFunc("/media", h.UploadMedia).Methods(http.MethodPost)
	api.HandleFunc("/media/{id}", h.DeleteMedia).Methods(http.MethodDelete)
	api.HandleFunc("/media/{id}/url", h.MediaURL).Methods(http.MethodGet)

	api.HandleFunc("/images", h.ListImages).Methods(http.MethodGet)
	api.Handle("/images/generate", limited(h.GenerateImage)).Methods(http.MethodPost)
	api.HandleFunc("/images/{id}/favorite", h.ToggleImageFavorite).Methods(http.MethodPost)
	api.HandleFunc("/images/{id}", h.DeleteImage).Methods(http.MethodDelete)

	api.HandleFunc("/voices", h.ListVoices).Methods(http.MethodGet)
	api.HandleFunc("/voices/{id}", h.DeleteVoice).Methods(http.MethodDelete)

	api.HandleFunc("/scheduled-posts/calendar", h.ScheduledPostCalendar).Methods(http.MethodGet)
	api.HandleFunc("/scheduled-posts", h.ListScheduledPosts).Methods(http.MethodGet)
	api.HandleFunc("/scheduled-posts", h.CreateScheduledPost).Methods(http.MethodPost)
	api.HandleFunc("/scheduled-posts/{id}", h.UpdateScheduledPost).Methods(http.MethodPut)
	api.HandleFunc("/scheduled-posts/{id}", h.DeleteScheduledPost).Methods(http.MethodDelete)

	api.HandleFunc("/publishing-history", h.ListPublishingHistory).Methods(http.MethodGet)
	api.HandleFunc("/publishing-history/{id}", h.DeletePublishingRecord).Methods(http.MethodDelete)

	api.HandleFunc("/wordpress/connection", h.GetWordPressConnection).Methods(http.MethodGet)

	api.HandleFunc("/upload-post/settings", h.GetUploadPostSettings).Methods(http.MethodGet)
	api.HandleFunc("/upload-post/settings", h.SaveUploadPostSettings).Methods(http.MethodPut)

	api.HandleFunc("/points", h.GetPoints).Methods(http.MethodGet)
	api.HandleFunc("/points/add", h.AddPoints).Methods(http.MethodPost)

	api.HandleFunc("/subscriptions/plans", h.ListPlans).Methods(http.MethodGet)
	api.HandleFunc("/subscriptions", h.GetSubscriptions).Methods(http.MethodGet)
	api.HandleFunc("/subscriptions", h.Subscribe).Methods(http.MethodPost)

	api.HandleFunc("/generation-logs", h.ListGenerationLogs).Methods(http.MethodGet)
	api.HandleFunc("/generation-logs", h.CreateGenerationLog).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return middleware.Chain(r, middleware.CORSMiddleware, middleware.LoggingMiddleware)
}
