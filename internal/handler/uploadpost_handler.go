package handlers

import (
	"net/http"

	"clover/internal/service"
)

type uploadPostSettingsRequest struct {
	APIKey          *string  `json:"api_key" validate:"omitempty,min=1,max=500"`
	ManagedUser     string   `json:"managed_user" validate:"max=200"`
	FacebookPageIDs []string `json:"facebook_page_ids" validate:"max=50,dive,max=100"`
}

func (h *Handlers) GetUploadPostSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	settings, err := h.UploadPostService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, settings, http.StatusOK)
}

func (h *Handlers) SaveUploadPostSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req uploadPostSettingsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	settings, err := h.UploadPostService.Save(r.Context(), userID, service.UploadPostInput{
		APIKey:          req.APIKey,
		ManagedUser:     req.ManagedUser,
		FacebookPageIDs: req.FacebookPageIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, settings, http.StatusOK)
}
