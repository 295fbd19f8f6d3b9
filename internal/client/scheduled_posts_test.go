package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clover/internal/apperr"
	"clover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledPostsKeepsCacheSorted(t *testing.T) {
	june := func(day, hour int) time.Time { return time.Date(2024, 6, day, hour, 0, 0, 0, time.UTC) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scheduled-posts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.ScheduledPost{
			{ID: "late", ScheduledAt: june(20, 9)},
			{ID: "early", ScheduledAt: june(2, 9)},
		})
	})
	mux.HandleFunc("POST /api/scheduled-posts", func(w http.ResponseWriter, r *http.Request) {
		var in ScheduledPostInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.ScheduledPost{ID: "mid", Title: in.Title, ScheduledAt: in.ScheduledAt})
	})
	mux.HandleFunc("PUT /api/scheduled-posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.ScheduledPost{ID: r.PathValue("id"), ScheduledAt: june(30, 9)})
	})
	mux.HandleFunc("DELETE /api/scheduled-posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	c := NewScheduledPosts(srv.Client(), srv.URL, "tok")

	posts, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, ids(posts))

	_, err = c.Create(ctx, ScheduledPostInput{Title: "mid", Platform: models.PlatformLinkedIn, ScheduledAt: june(10, 9)})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "mid", "late"}, ids(c.Posts()))

	_, err = c.Update(ctx, "early", ScheduledPostPatch{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "late", "early"}, ids(c.Posts()))

	require.NoError(t, c.Delete(ctx, "late"))
	assert.Equal(t, []string{"mid", "early"}, ids(c.Posts()))

	err = c.Delete(ctx, "missing")
	var upErr *apperr.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusNotFound, upErr.Status)
	assert.Len(t, c.Posts(), 2)

	assert.Equal(t, []string{"mid"}, ids(c.OnDay(june(10, 23))))
}

func TestScheduledPostsCalendarValidatesMonth(t *testing.T) {
	c := NewScheduledPosts(nil, "http://127.0.0.1:1", "")
	_, err := c.Calendar(context.Background(), "June")
	assert.Error(t, err)
}

func ids(posts []models.ScheduledPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
