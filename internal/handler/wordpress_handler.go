package handlers

import (
	"errors"
	"net/http"

	"clover/internal/apperr"
	"clover/internal/service"
	"clover/internal/wordpress"
)

type wordPressCredentialsRequest struct {
	SiteURL     string `json:"siteUrl" validate:"required,max=500"`
	Username    string `json:"username" validate:"required,max=200"`
	AppPassword string `json:"appPassword" validate:"required,max=200"`
}

type wordPressPublishRequest struct {
	Title      string `json:"title" validate:"required,max=500"`
	Content    string `json:"content" validate:"required,max=100000"`
	Status     string `json:"status"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url,max=500"`
	SEOEnabled bool   `json:"seoEnabled"`
}

type WordPressSaveResponse struct {
	Success    bool                             `json:"success"`
	Connection *service.WordPressConnectionView `json:"connection"`
}

type WordPressTestResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type WordPressPublishResponse struct {
	Success bool   `json:"success"`
	PostID  int64  `json:"postId"`
	Link    string `json:"link"`
}

func (req wordPressCredentialsRequest) credentials() service.WordPressCredentials {
	return service.WordPressCredentials{
		SiteURL:     req.SiteURL,
		Username:    req.Username,
		AppPassword: req.AppPassword,
	}
}

func (h *Handlers) GetWordPressConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	conn, err := h.WordPressService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, conn, http.StatusOK)
}

func (h *Handlers) WordPressSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req wordPressCredentialsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	conn, err := h.WordPressService.Save(r.Context(), userID, req.credentials())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, WordPressSaveResponse{Success: true, Connection: conn}, http.StatusOK)
}

func (h *Handlers) WordPressTest(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req wordPressCredentialsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.writeConnectionTest(w, r, h.WordPressService.Test(r.Context(), req.credentials()))
}

func (h *Handlers) WordPressTestStored(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	h.writeConnectionTest(w, r, h.WordPressService.TestStored(r.Context(), userID))
}

// writeConnectionTest reports a failed site check as {success:false}; bad
// input and a missing connection keep their own status codes.
func (h *Handlers) writeConnectionTest(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		writeSuccess(w, WordPressTestResponse{Success: true}, http.StatusOK)
		return
	}

	var verr *apperr.ValidationError
	if errors.As(err, &verr) || errors.Is(err, apperr.ErrNotFound) {
		writeServiceError(w, r, err)
		return
	}

	logRequestError(r, err).Warn("wordpress connection test failed")
	writeSuccess(w, WordPressTestResponse{Success: false, Error: err.Error()}, http.StatusOK)
}

func (h *Handlers) WordPressPublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req wordPressPublishRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	status := wordpress.StatusPublish
	if req.Status != "" {
		parsed, err := wordpress.ParsePostStatus(req.Status)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		status = parsed
	}

	result, err := h.WordPressService.Publish(r.Context(), userID, service.WordPressPublishInput{
		Title:      req.Title,
		Content:    req.Content,
		Status:     status,
		ImageURL:   req.ImageURL,
		SEOEnabled: req.SEOEnabled,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, WordPressPublishResponse{Success: true, PostID: result.PostID, Link: result.Link}, http.StatusOK)
}
