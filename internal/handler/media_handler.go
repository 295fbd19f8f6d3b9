package handlers

import (
	"errors"
	"fmt"
	"net/http"
)

type MediaURLResponse struct {
	URL string `json:"url"`
}

func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	files, err := h.MediaService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, files, http.StatusOK)
}

// UploadMedia takes a multipart form with the blob in the "file" field.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("file is too large (max %d MB)", h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "invalid multipart form", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if len(header.Filename) > 500 {
		WriteError(w, "file name must be at most 500 characters", http.StatusBadRequest)
		return
	}

	media, err := h.MediaService.Upload(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, media, http.StatusCreated)
}

func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.MediaService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "media file deleted"}, http.StatusOK)
}

func (h *Handlers) MediaURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	url, err := h.MediaService.URL(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MediaURLResponse{URL: url}, http.StatusOK)
}
