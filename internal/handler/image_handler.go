package handlers

import (
	"net/http"

	"clover/internal/service"
)

type generateImageRequest struct {
	Prompt      string `json:"prompt" validate:"required,max=4000"`
	Style       string `json:"style" validate:"max=100"`
	AspectRatio string `json:"aspect_ratio" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	IsAvatar    bool   `json:"is_avatar"`
}

type stickerRequest struct {
	Text  string `json:"text" validate:"max=200"`
	Emoji string `json:"emoji" validate:"max=50"`
	Style string `json:"style" validate:"max=50"`
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	images, err := h.ImageService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, images, http.StatusOK)
}

func (h *Handlers) GenerateImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req generateImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	image, err := h.ImageService.Generate(r.Context(), userID, service.GenerateImageInput{
		Prompt:      req.Prompt,
		Style:       req.Style,
		AspectRatio: req.AspectRatio,
		IsAvatar:    req.IsAvatar,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) ToggleImageFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	image, err := h.ImageService.ToggleFavorite(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, image, http.StatusOK)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.ImageService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "image deleted"}, http.StatusOK)
}

// StickerGenerate is public; nothing is stored.
func (h *Handlers) StickerGenerate(w http.ResponseWriter, r *http.Request) {
	var req stickerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	text := req.Text
	if text == "" {
		text = req.Emoji
	}

	sticker, err := h.ImageService.Sticker(r.Context(), text, req.Style)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, sticker, http.StatusOK)
}
