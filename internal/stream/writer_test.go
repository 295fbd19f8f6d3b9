package stream

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	w, err := NewWriter(rr)
	require.NoError(t, err)
	assert.False(t, w.Started())

	require.NoError(t, w.WriteDelta("Hi \"there\"\n"))
	require.NoError(t, w.WriteDelta("!"))
	require.NoError(t, w.Done())

	assert.True(t, w.Started())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.True(t, rr.Flushed)

	var d Decoder
	got := d.Feed(rr.Body.Bytes())
	assert.Equal(t, []string{"Hi \"there\"\n", "!"}, got)
	assert.True(t, d.Done())
}

type plainWriter struct {
	http.ResponseWriter
}

func TestNewWriterRequiresFlusher(t *testing.T) {
	_, err := NewWriter(plainWriter{httptest.NewRecorder()})
	assert.ErrorIs(t, err, ErrStreamingUnsupported)
}
