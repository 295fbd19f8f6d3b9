package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clover/internal/apperr"
	"clover/internal/models"
)

type addPointsRequest struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}

type subscribeRequest struct {
	Plan          string `json:"plan" validate:"required"`
	BillingPeriod string `json:"billing_period" validate:"required"`
}

type createGenerationLogRequest struct {
	Prompt   string `json:"prompt" validate:"max=100000"`
	Result   string `json:"result" validate:"max=200000"`
	ToolType string `json:"tool_type" validate:"required,max=50"`
}

type SubscriptionsResponse struct {
	Active  *models.UserSubscription  `json:"active"`
	History []models.UserSubscription `json:"history"`
}

func (h *Handlers) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	points, err := h.PointsService.Balance(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, points, http.StatusOK)
}

func (h *Handlers) AddPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req addPointsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	points, err := h.PointsService.Add(r.Context(), userID, req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, points, http.StatusOK)
}

func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.SubscriptionService.Plans(), http.StatusOK)
}

func (h *Handlers) GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	active, err := h.SubscriptionService.Active(r.Context(), userID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		writeServiceError(w, r, err)
		return
	}

	history, err := h.SubscriptionService.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if history == nil {
		history = []models.UserSubscription{}
	}

	writeSuccess(w, SubscriptionsResponse{Active: active, History: history}, http.StatusOK)
}

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req subscribeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	period, err := models.ParseBillingPeriod(req.BillingPeriod)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := h.SubscriptionService.Subscribe(r.Context(), userID, req.Plan, period)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, sub, http.StatusCreated)
}

// ListGenerationLogs honours ?limit=N; the service clamps it.
func (h *Handlers) ListGenerationLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, "limit must be a number", http.StatusBadRequest)
			return
		}
		limit = n
	}

	logs, err := h.GenerationLogService.List(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, logs, http.StatusOK)
}

func (h *Handlers) CreateGenerationLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createGenerationLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.GenerationLogService.Create(r.Context(), userID, req.Prompt, req.Result, req.ToolType)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, entry, http.StatusCreated)
}
