package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	assert.ErrorIs(t, FromStatus("ai", http.StatusTooManyRequests, ""), ErrRateLimited)
	assert.ErrorIs(t, FromStatus("ai", http.StatusPaymentRequired, ""), ErrQuotaExhausted)

	err := FromStatus("wordpress", http.StatusBadGateway, "boom")
	var upstream *UpstreamError
	assert.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
	assert.Equal(t, "wordpress returned status 502: boom", err.Error())
}

func TestValidationError(t *testing.T) {
	err := Invalid("title", "must be at most %d characters", 500)
	var v *ValidationError
	assert.True(t, errors.As(err, &v))
	assert.Equal(t, "title: must be at most 500 characters", err.Error())
}
