package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ScheduledPostRepositoryImpl struct {
	db *sqlx.DB
}

func NewScheduledPostRepository(db *sqlx.DB) *ScheduledPostRepositoryImpl {
	return &ScheduledPostRepositoryImpl{db: db}
}

func (r *ScheduledPostRepositoryImpl) List(ctx context.Context, userID string) ([]models.ScheduledPost, error) {
	query := `
		SELECT * FROM scheduled_posts
		WHERE user_id = $1
		ORDER BY scheduled_at ASC, created_at ASC
	`

	posts := []models.ScheduledPost{}
	if err := r.db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("listing scheduled posts: %w", err)
	}

	return posts, nil
}

// ListBetween returns the posts with from <= scheduled_at < to.
func (r *ScheduledPostRepositoryImpl) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]models.ScheduledPost, error) {
	query := `
		SELECT * FROM scheduled_posts
		WHERE user_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at ASC, created_at ASC
	`

	posts := []models.ScheduledPost{}
	if err := r.db.SelectContext(ctx, &posts, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("listing scheduled posts: %w", err)
	}

	return posts, nil
}

func (r *ScheduledPostRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*models.ScheduledPost, error) {
	query := `SELECT * FROM scheduled_posts WHERE id = $1 AND user_id = $2`

	var post models.ScheduledPost
	if err := r.db.GetContext(ctx, &post, query, id, userID); err != nil {
		return nil, getErr(err, "scheduled post")
	}

	return &post, nil
}

func (r *ScheduledPostRepositoryImpl) Create(ctx context.Context, post *models.ScheduledPost) error {
	query := `
		INSERT INTO scheduled_posts
		(id, user_id, title, content, platform, scheduled_at, status, media_urls, last_error, created_at, updated_at)
		VALUES
		(:id, :user_id, :title, :content, :platform, :scheduled_at, :status, :media_urls, :last_error, :created_at, :updated_at)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.MediaURLs == nil {
		post.MediaURLs = []string{}
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("creating scheduled post: %w", err)
	}

	return nil
}

func (r *ScheduledPostRepositoryImpl) Update(ctx context.Context, post *models.ScheduledPost) error {
	query := `
		UPDATE scheduled_posts SET
			title = :title,
			content = :content,
			platform = :platform,
			scheduled_at = :scheduled_at,
			status = :status,
			media_urls = :media_urls,
			last_error = :last_error,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id AND status <> 'publishing'
	`

	if post.MediaURLs == nil {
		post.MediaURLs = []string{}
	}
	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("updating scheduled post: %w", err)
	}

	return affected(result, "scheduled post")
}

func (r *ScheduledPostRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM scheduled_posts WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting scheduled post: %w", err)
	}

	return affected(result, "scheduled post")
}

// ProcessDue claims up to limit due posts by moving them to publishing in one
// committed statement, hands each to fn and stores the status fn returns. A
// claimed post is never selected again, so a failure after fn ran leaves it in
// publishing instead of sending it twice. Rows claimed by a concurrent
// dispatcher are skipped.
func (r *ScheduledPostRepositoryImpl) ProcessDue(ctx context.Context, now time.Time, limit int, fn DueFunc) (int, error) {
	claim := `
		UPDATE scheduled_posts SET status = 'publishing', updated_at = $1
		WHERE id IN (
			SELECT id FROM scheduled_posts
			WHERE status = 'scheduled' AND scheduled_at <= $1
			ORDER BY scheduled_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *
	`

	claimed := []models.ScheduledPost{}
	if err := r.db.SelectContext(ctx, &claimed, claim, now, limit); err != nil {
		return 0, fmt.Errorf("claiming due posts: %w", err)
	}
	sort.SliceStable(claimed, func(i, j int) bool {
		return claimed[i].ScheduledAt.Before(claimed[j].ScheduledAt)
	})

	// The outcome is stored even when ctx is cancelled mid-sweep.
	store := context.WithoutCancel(ctx)
	update := `
		UPDATE scheduled_posts SET status = $1, last_error = $2, updated_at = $3
		WHERE id = $4 AND status = 'publishing'
	`

	var errs []error
	for _, post := range claimed {
		status, lastError := fn(ctx, post)
		if _, err := r.db.ExecContext(store, update, status, lastError, time.Now(), post.ID); err != nil {
			errs = append(errs, fmt.Errorf("storing outcome of post %s: %w", post.ID, err))
		}
	}

	return len(claimed), errors.Join(errs...)
}
