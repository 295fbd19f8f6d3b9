package repository

import (
	"context"
	"fmt"
	"time"

	"clover/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PublishingRepositoryImpl struct {
	db *sqlx.DB
}

func NewPublishingRepository(db *sqlx.DB) *PublishingRepositoryImpl {
	return &PublishingRepositoryImpl{db: db}
}

func (r *PublishingRepositoryImpl) List(ctx context.Context, userID string) ([]models.PublishingRecord, error) {
	query := `SELECT * FROM publishing_history WHERE user_id = $1 ORDER BY created_at DESC`

	records := []models.PublishingRecord{}
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("listing publishing history: %w", err)
	}

	return records, nil
}

func (r *PublishingRepositoryImpl) Create(ctx context.Context, record *models.PublishingRecord) error {
	query := `
		INSERT INTO publishing_history (id, user_id, title, content, platform, status, published_url, image_url, created_at)
		VALUES (:id, :user_id, :title, :content, :platform, :status, :published_url, :image_url, :created_at)
	`

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Platform == "" {
		record.Platform = "wordpress"
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("creating publishing record: %w", err)
	}

	return nil
}

func (r *PublishingRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM publishing_history WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting publishing record: %w", err)
	}

	return affected(result, "publishing record")
}
