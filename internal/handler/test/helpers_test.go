package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"clover/internal/config"
	handlers "clover/internal/handler"
	"clover/internal/middleware"

	"github.com/stretchr/testify/require"
)

const (
	testUserID = "11111111-1111-1111-1111-111111111111"
	testItemID = "22222222-2222-2222-2222-222222222222"
)

func newTestHandlers() *handlers.Handlers {
	return &handlers.Handlers{
		Cfg:      &config.Config{MaxUploadSize: 1 << 20},
		Validate: handlers.NewValidator(),
	}
}

// serve runs one request through the full router as testUserID.
func serve(t *testing.T, h *handlers.Handlers, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return serveAs(t, h, method, path, body, "token-"+testUserID)
}

func serveAs(t *testing.T, h *handlers.Handlers, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		reader = jsonBody(t, b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	handlers.NewRouter(h, fakeVerifier{}, nil).ServeHTTP(rr, req)
	return rr
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func newLimiter(burst int) *middleware.RateLimiter {
	return middleware.NewRateLimiter(1, burst, time.Minute)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.ErrorResponse
	decodeBody(t, rr, &resp)
	return resp.Error
}
