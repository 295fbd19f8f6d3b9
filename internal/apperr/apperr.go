// Package apperr holds the error taxonomy shared by services, upstream
// clients and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrNotConfigured  = errors.New("integration is not configured")
	ErrRateLimited    = errors.New("rate limit exceeded, please try again later")
	ErrQuotaExhausted = errors.New("quota exhausted, please add credits")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UpstreamError is a non-success answer from a third-party API.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Message)
}

// FromStatus maps an upstream HTTP status to the taxonomy: 429 and 402 become
// ErrRateLimited and ErrQuotaExhausted, everything else an *UpstreamError.
func FromStatus(service string, status int, message string) error {
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", service, ErrRateLimited)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%s: %w", service, ErrQuotaExhausted)
	}
	return &UpstreamError{Service: service, Status: status, Message: message}
}
