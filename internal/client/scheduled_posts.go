package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"clover/internal/calendar"
	"clover/internal/models"
	"clover/internal/upstream"
)

// ScheduledPostInput is the body for creating a post.
type ScheduledPostInput struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Platform    models.Platform `json:"platform"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	Status      string          `json:"status,omitempty"`
	MediaURLs   []string        `json:"media_urls,omitempty"`
}

// ScheduledPostPatch holds the fields to change. Nil fields are left alone.
type ScheduledPostPatch struct {
	Title       *string          `json:"title,omitempty"`
	Content     *string          `json:"content,omitempty"`
	Platform    *models.Platform `json:"platform,omitempty"`
	ScheduledAt *time.Time       `json:"scheduled_at,omitempty"`
	Status      *string          `json:"status,omitempty"`
	MediaURLs   []string         `json:"media_urls,omitempty"`
}

// ScheduledPosts is the scheduled post resource with a local copy kept in
// scheduled order.
type ScheduledPosts struct {
	api *upstream.Client

	mu       sync.Mutex
	schedule calendar.Schedule
}

func NewScheduledPosts(hc *http.Client, baseURL, token string) *ScheduledPosts {
	return &ScheduledPosts{api: newAPI(hc, baseURL, token)}
}

const scheduledPostsPath = "/api/scheduled-posts"

func (c *ScheduledPosts) List(ctx context.Context) ([]models.ScheduledPost, error) {
	var posts []models.ScheduledPost
	if err := c.api.DoJSON(ctx, http.MethodGet, scheduledPostsPath, nil, &posts); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedule.Replace(posts)
	return c.schedule.Posts(), nil
}

func (c *ScheduledPosts) Create(ctx context.Context, in ScheduledPostInput) (*models.ScheduledPost, error) {
	var post models.ScheduledPost
	if err := c.api.DoJSON(ctx, http.MethodPost, scheduledPostsPath, in, &post); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.schedule.Upsert(post)
	c.mu.Unlock()
	return &post, nil
}

func (c *ScheduledPosts) Update(ctx context.Context, id string, patch ScheduledPostPatch) (*models.ScheduledPost, error) {
	var post models.ScheduledPost
	if err := c.api.DoJSON(ctx, http.MethodPut, scheduledPostsPath+"/"+url.PathEscape(id), patch, &post); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.schedule.Upsert(post)
	c.mu.Unlock()
	return &post, nil
}

func (c *ScheduledPosts) Delete(ctx context.Context, id string) error {
	if err := c.api.DoJSON(ctx, http.MethodDelete, scheduledPostsPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}

	c.mu.Lock()
	c.schedule.Remove(id)
	c.mu.Unlock()
	return nil
}

// Calendar fetches the server-side month grid, month formatted as 2006-01.
func (c *ScheduledPosts) Calendar(ctx context.Context, month string) (*CalendarMonth, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q", month)
	}

	var out CalendarMonth
	path := scheduledPostsPath + "/calendar?month=" + url.QueryEscape(month)
	if err := c.api.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CalendarMonth struct {
	Month         string         `json:"month"`
	LeadingBlanks int            `json:"leading_blanks"`
	Days          []calendar.Day `json:"days"`
}

// Posts returns the cached posts in scheduled order.
func (c *ScheduledPosts) Posts() []models.ScheduledPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schedule.Posts()
}

// OnDay returns the cached posts scheduled on day's calendar date.
func (c *ScheduledPosts) OnDay(day time.Time) []models.ScheduledPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schedule.OnDay(day)
}
