package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"clover/internal/apperr"
	"clover/internal/logger"
	"clover/internal/middleware"
	"clover/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	ErrorID string `json:"errorId,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the error taxonomy to a status. Unknown errors are
// logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *apperr.ValidationError
		upErr    *apperr.UpstreamError
		cloneErr *service.CloneError
	)

	switch {
	case errors.As(err, &verr):
		WriteError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrUnauthorized):
		WriteError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrQuotaExhausted):
		WriteError(w, apperr.ErrQuotaExhausted.Error(), http.StatusPaymentRequired)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrConflict):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperr.ErrRateLimited):
		WriteError(w, apperr.ErrRateLimited.Error(), http.StatusTooManyRequests)
	case errors.Is(err, apperr.ErrNotConfigured):
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &cloneErr):
		writeSuccess(w, ErrorResponse{Error: cloneErr.Error(), ErrorID: cloneErr.ErrorID}, http.StatusInternalServerError)
	case errors.As(err, &upErr):
		logRequestError(r, err).Warn("upstream call failed")
		WriteError(w, upErr.Error(), upstreamStatus(upErr.Status))
	default:
		logRequestError(r, err).Error("request failed")
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// upstreamStatus passes a provider's error status through. A 401 from a
// provider is not the caller's session failing, so it and anything outside
// 4xx/5xx become 502.
func upstreamStatus(status int) int {
	if status < 400 || status > 599 || status == http.StatusUnauthorized {
		return http.StatusBadGateway
	}
	return status
}

func logRequestError(r *http.Request, err error) *logrus.Entry {
	fields := logger.Fields{"path": r.URL.Path}
	if userID, ok := middleware.UserID(r.Context()); ok {
		fields["user_id"] = userID
	}
	return logger.WithFields(fields).WithError(err)
}

// decodeAndValidate reads a JSON body of at most MaxUploadSize bytes into req
// and runs the validator tags. It writes the 400 answer itself and reports
// whether the caller may go on.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("request body is too large (max %d MB)", h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
			return false
		}
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}

	return true
}

// validationMessage reports the first failing field in plain words.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("%s must have at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
