package handlers

import (
	"net/http"

	"clover/internal/middleware"
	"clover/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type createPromptRequest struct {
	Title      string   `json:"title" validate:"required,max=500"`
	Content    string   `json:"content" validate:"required,max=100000"`
	Category   string   `json:"category" validate:"max=100"`
	Tags       []string `json:"tags" validate:"max=50,dive,max=100"`
	IsFavorite bool     `json:"is_favorite"`
}

type updatePromptRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=1,max=500"`
	Content    *string  `json:"content" validate:"omitempty,min=1,max=100000"`
	Category   *string  `json:"category" validate:"omitempty,max=100"`
	Tags       []string `json:"tags" validate:"omitempty,max=50,dive,max=100"`
	IsFavorite *bool    `json:"is_favorite"`
}

// currentUser returns the verified caller. Routes behind AuthMiddleware always
// have one.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

// pathID returns the {id} route variable. Ids are UUIDs, so anything else
// names no resource and is answered with 404.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		WriteError(w, "not found", http.StatusNotFound)
		return "", false
	}
	return id, true
}

func (h *Handlers) ListPrompts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	prompts, err := h.PromptService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, prompts, http.StatusOK)
}

func (h *Handlers) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createPromptRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	prompt, err := h.PromptService.Create(r.Context(), userID, service.PromptInput{
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, prompt, http.StatusCreated)
}

func (h *Handlers) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updatePromptRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	prompt, err := h.PromptService.Update(r.Context(), userID, id, service.PromptUpdate{
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, prompt, http.StatusOK)
}

func (h *Handlers) TogglePromptFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	prompt, err := h.PromptService.ToggleFavorite(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, prompt, http.StatusOK)
}

func (h *Handlers) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.PromptService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "prompt deleted"}, http.StatusOK)
}
