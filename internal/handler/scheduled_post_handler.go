package handlers

import (
	"net/http"
	"time"

	"clover/internal/models"
	"clover/internal/service"
)

const monthLayout = "2006-01"

type createScheduledPostRequest struct {
	Title       string    `json:"title" validate:"required,max=500"`
	Content     string    `json:"content" validate:"required,max=100000"`
	Platform    string    `json:"platform" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Status      string    `json:"status"`
	MediaURLs   []string  `json:"media_urls" validate:"max=20,dive,url"`
}

type updateScheduledPostRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Content     *string    `json:"content" validate:"omitempty,min=1,max=100000"`
	Platform    *string    `json:"platform"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status"`
	MediaURLs   []string   `json:"media_urls" validate:"omitempty,max=20,dive,url"`
}

func (h *Handlers) ListScheduledPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	posts, err := h.ScheduledPostService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreateScheduledPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createScheduledPostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var status models.PostStatus
	if req.Status != "" {
		if status, err = models.ParsePostStatus(req.Status); err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	post, err := h.ScheduledPostService.Create(r.Context(), userID, service.ScheduledPostInput{
		Title:       req.Title,
		Content:     req.Content,
		Platform:    platform,
		ScheduledAt: req.ScheduledAt,
		Status:      status,
		MediaURLs:   req.MediaURLs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdateScheduledPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateScheduledPostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	in := service.ScheduledPostUpdate{
		Title:       req.Title,
		Content:     req.Content,
		ScheduledAt: req.ScheduledAt,
		MediaURLs:   req.MediaURLs,
	}
	if req.Platform != nil {
		platform, err := models.ParsePlatform(*req.Platform)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		in.Platform = &platform
	}
	if req.Status != nil {
		status, err := models.ParsePostStatus(*req.Status)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		in.Status = &status
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	post, err := h.ScheduledPostService.Update(r.Context(), userID, id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeleteScheduledPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.ScheduledPostService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "scheduled post deleted"}, http.StatusOK)
}

// ScheduledPostCalendar returns the month grid for ?month=YYYY-MM, or the
// current month when absent.
func (h *Handlers) ScheduledPostCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	anchor := time.Now().UTC()
	if month := r.URL.Query().Get("month"); month != "" {
		parsed, err := time.Parse(monthLayout, month)
		if err != nil {
			WriteError(w, "month must be formatted as YYYY-MM", http.StatusBadRequest)
			return
		}
		anchor = parsed
	}

	grid, err := h.ScheduledPostService.Calendar(r.Context(), userID, anchor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, grid, http.StatusOK)
}
