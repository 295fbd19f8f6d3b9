package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clover/internal/apperr"
	"clover/internal/calendar"
	"clover/internal/models"
	"clover/internal/repository"
)

type ScheduledPostInput struct {
	Title       string
	Content     string
	Platform    models.Platform
	ScheduledAt time.Time
	Status      models.PostStatus
	MediaURLs   []string
}

// ScheduledPostUpdate carries only the fields the caller sent; enums are
// already parsed.
type ScheduledPostUpdate struct {
	Title       *string
	Content     *string
	Platform    *models.Platform
	ScheduledAt *time.Time
	Status      *models.PostStatus
	MediaURLs   []string
}

type CalendarMonth struct {
	Month         string         `json:"month"`
	LeadingBlanks int            `json:"leading_blanks"`
	Days          []calendar.Day `json:"days"`
}

type ScheduledPostService interface {
	List(ctx context.Context, userID string) ([]models.ScheduledPost, error)
	Create(ctx context.Context, userID string, in ScheduledPostInput) (*models.ScheduledPost, error)
	Update(ctx context.Context, userID, id string, in ScheduledPostUpdate) (*models.ScheduledPost, error)
	Delete(ctx context.Context, userID, id string) error
	Calendar(ctx context.Context, userID string, anchor time.Time) (*CalendarMonth, error)
}

type scheduledPostService struct {
	postRepo repository.ScheduledPostRepository
}

func NewScheduledPostService(postRepo repository.ScheduledPostRepository) ScheduledPostService {
	return &scheduledPostService{postRepo: postRepo}
}

func (s *scheduledPostService) List(ctx context.Context, userID string) ([]models.ScheduledPost, error) {
	return s.postRepo.List(ctx, userID)
}

func (s *scheduledPostService) Create(ctx context.Context, userID string, in ScheduledPostInput) (*models.ScheduledPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Invalid("title", "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Invalid("content", "content is required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, apperr.Invalid("scheduled_at", "scheduled_at is required")
	}

	status := in.Status
	if status == "" {
		status = models.PostScheduled
	}
	if !status.CanCreate() {
		return nil, apperr.Invalid("status", "a new post must be draft or scheduled")
	}

	post := &models.ScheduledPost{
		UserID:      userID,
		Title:       in.Title,
		Content:     in.Content,
		Platform:    in.Platform,
		ScheduledAt: in.ScheduledAt,
		Status:      status,
		MediaURLs:   in.MediaURLs,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Update merges the sent fields into the stored post. A status change must
// follow the post lifecycle.
func (s *scheduledPostService) Update(ctx context.Context, userID, id string, in ScheduledPostUpdate) (*models.ScheduledPost, error) {
	post, err := s.postRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if post.Status == models.PostPublishing {
		return nil, fmt.Errorf("scheduled post is being published: %w", apperr.ErrConflict)
	}

	if in.Status != nil {
		if !post.Status.CanTransition(*in.Status) {
			return nil, apperr.Invalid("status", "cannot change status from %s to %s", post.Status, *in.Status)
		}
		if *in.Status != post.Status && *in.Status == models.PostScheduled {
			post.LastError = ""
		}
		post.Status = *in.Status
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Invalid("title", "title is required")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, apperr.Invalid("content", "content is required")
		}
		post.Content = *in.Content
	}
	if in.Platform != nil {
		post.Platform = *in.Platform
	}
	if in.ScheduledAt != nil {
		post.ScheduledAt = *in.ScheduledAt
	}
	if in.MediaURLs != nil {
		post.MediaURLs = in.MediaURLs
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *scheduledPostService) Delete(ctx context.Context, userID, id string) error {
	return s.postRepo.Delete(ctx, userID, id)
}

// Calendar groups the posts of anchor's month by day, in anchor's location.
func (s *scheduledPostService) Calendar(ctx context.Context, userID string, anchor time.Time) (*CalendarMonth, error) {
	grid := calendar.MonthGrid(anchor)

	posts, err := s.postRepo.ListBetween(ctx, userID, grid.First, grid.First.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].ScheduledAt = posts[i].ScheduledAt.In(anchor.Location())
	}

	return &CalendarMonth{
		Month:         grid.First.Format("2006-01"),
		LeadingBlanks: grid.LeadingBlanks,
		Days:          grid.Group(posts),
	}, nil
}
